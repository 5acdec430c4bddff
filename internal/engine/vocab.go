package engine

import "strings"

// Category identifies which keyword list a vocabulary term belongs to.
type Category int

const (
	CategoryTechnical Category = iota
	CategoryTools
	CategorySoft
	CategoryVerbs
)

// categoryOrder lists categories from highest to lowest claim priority: a
// term appearing in several custom lists is indexed under the first category
// here that contains it.
var categoryOrder = [...]Category{CategoryTechnical, CategoryTools, CategorySoft, CategoryVerbs}

// VocabularyLists holds the term lists for each keyword category. Custom
// lists are merged on top of the built-in defaults.
type VocabularyLists struct {
	TechnicalSkills []string
	Tools           []string
	SoftSkills      []string
	ActionVerbs     []string
}

func (v VocabularyLists) byCategory(c Category) []string {
	switch c {
	case CategoryTechnical:
		return v.TechnicalSkills
	case CategoryTools:
		return v.Tools
	case CategorySoft:
		return v.SoftSkills
	default:
		return v.ActionVerbs
	}
}

var defaultVocabulary = VocabularyLists{
	TechnicalSkills: []string{
		"python", "java", "javascript", "typescript", "go", "golang", "rust",
		"c++", "c#", "ruby", "php", "swift", "kotlin", "scala", "sql",
		"html", "css", "react", "angular", "vue", "node.js", "django",
		"flask", "fastapi", "spring", "rails", "rest", "graphql", "grpc",
		"microservices", "distributed systems", "machine learning",
		"deep learning", "data science", "data engineering", "etl",
		"natural language processing", "computer vision", "api design",
		"system design", "cloud computing", "devops", "ci/cd", "tdd",
		"object oriented programming", "functional programming",
		"data structures", "algorithms", "concurrency", "networking",
		"security", "cryptography", "linux", "unit testing",
		"integration testing", "performance tuning", "caching",
		"message queues", "event driven architecture",
	},
	Tools: []string{
		"docker", "kubernetes", "terraform", "ansible", "jenkins", "git",
		"github", "gitlab", "bitbucket", "jira", "confluence", "aws",
		"azure", "gcp", "postgresql", "mysql", "mongodb", "redis",
		"elasticsearch", "kafka", "rabbitmq", "sqlite", "dynamodb",
		"cassandra", "snowflake", "spark", "hadoop", "airflow", "dbt",
		"prometheus", "grafana", "datadog", "splunk", "pandas", "numpy",
		"pytorch", "tensorflow", "scikit-learn", "jupyter", "tableau",
		"power bi", "figma", "postman", "nginx", "vault", "helm",
		"argocd", "vs code", "intellij", "webpack", "vite",
	},
	SoftSkills: []string{
		"communication", "leadership", "teamwork", "collaboration",
		"problem solving", "critical thinking", "adaptability",
		"time management", "attention to detail", "creativity",
		"mentoring", "ownership", "accountability", "empathy",
		"conflict resolution", "decision making", "stakeholder management",
		"cross functional collaboration", "presentation", "negotiation",
		"self motivated", "fast learner", "analytical thinking",
		"customer focus", "prioritization",
	},
	ActionVerbs: []string{
		"develop", "design", "build", "implement", "create", "deliver",
		"lead", "manage", "drive", "own", "architect", "optimize",
		"improve", "maintain", "deploy", "automate", "scale", "migrate",
		"integrate", "collaborate", "coordinate", "mentor", "review",
		"analyze", "research", "document", "test", "debug", "monitor",
		"troubleshoot", "refactor", "launch", "ship", "define",
		"establish", "streamline", "reduce", "increase",
	},
}

// vocabEntry records the canonical term to report and its category.
type vocabEntry struct {
	term     string
	category Category
}

// vocabulary is the compiled lookup index. Phrases (and exact single words)
// live in exact; single-word terms additionally get a stemmed key so
// inflected forms in the text still match.
type vocabulary struct {
	exact     map[string]vocabEntry
	stems     map[string]vocabEntry
	maxPhrase int
}

// newVocabulary compiles the built-in lists merged with custom additions.
// Categories claim terms in priority order, so a word listed both as a
// technical skill and an action verb is indexed as a technical skill.
func newVocabulary(custom VocabularyLists) *vocabulary {
	v := &vocabulary{
		exact:     make(map[string]vocabEntry),
		stems:     make(map[string]vocabEntry),
		maxPhrase: 1,
	}
	for _, cat := range categoryOrder {
		v.addTerms(defaultVocabulary.byCategory(cat), cat)
		v.addTerms(custom.byCategory(cat), cat)
	}
	return v
}

func (v *vocabulary) addTerms(terms []string, cat Category) {
	for _, raw := range terms {
		// Terms go through the same tokenizer as document text so that
		// "CI/CD" and "ci cd" index to the identical key.
		term := strings.Join(tokenize(raw), " ")
		if term == "" {
			continue
		}
		if _, taken := v.exact[term]; taken {
			continue
		}
		entry := vocabEntry{term: term, category: cat}
		v.exact[term] = entry
		if words := strings.Count(term, " ") + 1; words > 1 {
			if words > v.maxPhrase {
				v.maxPhrase = words
			}
		} else if _, taken := v.stems[stem(term)]; !taken {
			v.stems[stem(term)] = entry
		}
	}
}

// lookupPhrase reports the entry for an exact multi-word or single-word term.
func (v *vocabulary) lookupPhrase(phrase string) (vocabEntry, bool) {
	e, ok := v.exact[phrase]
	return e, ok
}

// lookupToken matches a single token exactly first, then by stem.
func (v *vocabulary) lookupToken(tok string) (vocabEntry, bool) {
	if e, ok := v.exact[tok]; ok {
		return e, ok
	}
	e, ok := v.stems[stem(tok)]
	return e, ok
}
