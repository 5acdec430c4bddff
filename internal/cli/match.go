package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"resumatch/internal/common"
	"resumatch/internal/engine"
	"resumatch/internal/store"
	"resumatch/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Score a resume against a job description",
	Long: `Match a resume against the keywords extracted from a job description
and compute an ATS compatibility score from 0 to 100.

The resume file may be a JSON document with name, skills, experience, and
education fields, or a plain text resume. JSON resumes are matched field by
field; plain text resumes are matched against the whole document.

With --keywords, the given keyword sets (the JSON output of the extract
command) are matched as-is and the job description is not re-analyzed.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var (
	matchConfig       common.CommandConfig
	matchKeywordsFile string
)

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	matchCmd.Flags().StringVar(&matchKeywordsFile, "keywords", "", "JSON keywords file to match against (skips extraction)")

	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// parseResumeContent decodes a JSON resume when the file looks like JSON,
// otherwise treats the whole file as plain resume text.
func parseResumeContent(content string) (*types.ParsedResume, string, error) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, content, nil
	}

	var resume types.ParsedResume
	if err := json.Unmarshal([]byte(trimmed), &resume); err != nil {
		return nil, "", fmt.Errorf("resume file looks like JSON but could not be parsed: %w", err)
	}
	return &resume, "", nil
}

// loadKeywordsFile reads a keyword set previously produced by the extract
// command in JSON format.
func loadKeywordsFile(path string) (*types.ExtractedKeywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var keywords types.ExtractedKeywords
	if err := json.Unmarshal(data, &keywords); err != nil {
		return nil, fmt.Errorf("keywords file could not be parsed: %w", err)
	}
	return &keywords, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	eng := engine.NewService(cfg.EngineOptions(), logger)

	var suppliedKeywords *types.ExtractedKeywords
	if matchKeywordsFile != "" {
		kw, err := loadKeywordsFile(matchKeywordsFile)
		if err != nil {
			return err
		}
		suppliedKeywords = kw
	}

	// The raw resume text travels alongside the structured input so the
	// operation can fall back to full-document matching.
	type matchInput struct {
		types.MatchResumeInput
		resumeText string
	}

	createInput := func(contents []string) (matchInput, error) {
		if len(contents) != 2 {
			return matchInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}

		resume, resumeText, err := parseResumeContent(contents[0])
		if err != nil {
			return matchInput{}, err
		}

		input := matchInput{resumeText: resumeText}
		input.JobDescription = contents[1]
		input.Keywords = suppliedKeywords
		if resume != nil {
			input.Resume = *resume
		}
		return input, nil
	}

	logDetails := func(input matchInput, cfg common.CommandConfig) {
		logger.Info("Starting resume matching",
			"structured_resume", input.resumeText == "",
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input matchInput) (types.MatchResult, error) {
		var result types.MatchResult
		switch {
		case input.Keywords != nil && input.resumeText == "":
			result = eng.MatchResume(input.Resume, *input.Keywords)
		case input.Keywords != nil:
			result = eng.MatchResumeText(input.resumeText, *input.Keywords)
		case input.resumeText == "":
			_, result = eng.AnalyzeMatch(input.Resume, input.JobDescription)
		default:
			keywords := eng.ExtractKeywords(input.JobDescription)
			result = eng.MatchResumeText(input.resumeText, keywords)
		}

		recordCommandHistory(ctx, cfg, logger, store.Entry{
			Operation:    store.OperationMatch,
			Score:        result.Score,
			MatchedCount: len(result.MatchedKeywords),
			MissingCount: len(result.MissingKeywords),
			Source:       "cli",
		})

		return result, nil
	}

	err := common.RunEngineCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		createInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Resume matching completed successfully")
	return nil
}
