package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kayaai/career-navigator/internal/config"
	"kayaai/career-navigator/internal/logging"
	"kayaai/career-navigator/internal/models"
	"kayaai/career-navigator/internal/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume for a company and job role",
	Long:  "Extracts text from a PDF or DOCX resume, generates the ideal resume benchmark, evaluates the resume with every configured provider and writes the report.",
	RunE:  runAnalyze,
}

var (
	analyzeResumePath string
	analyzeCompany    string
	analyzeRole       string
	analyzeOutPath    string
	analyzeFormat     string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumePath, "resume", "r", "", "Resume file (PDF or DOCX); a test resume is used when omitted")
	analyzeCmd.Flags().StringVarP(&analyzeCompany, "company", "c", "", "Target company (required)")
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "j", "", "Target job role (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutPath, "out", "o", "", "Report output path (default: stdout)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "txt", "Report format: txt or pdf")

	if err := analyzeCmd.MarkFlagRequired("company"); err != nil {
		panic(fmt.Sprintf("failed to mark company flag as required: %v", err))
	}
	if err := analyzeCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

type analyzeOptions struct {
	ResumePath  string
	Company     string
	Role        string
	OutPath     string
	Format      string
	MaxFileSize int64
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logging.SetLevel(cfg.Log.Level)

	providers := services.BuildProviders(cfg.Providers, logging.Default)
	orchestrator := services.NewOrchestrator(providers, logging.Default)

	return analyzeResume(cmd.Context(), orchestrator, analyzeOptions{
		ResumePath:  analyzeResumePath,
		Company:     analyzeCompany,
		Role:        analyzeRole,
		OutPath:     analyzeOutPath,
		Format:      analyzeFormat,
		MaxFileSize: cfg.Storage.MaxFileSize,
	}, cmd.OutOrStdout())
}

func analyzeResume(ctx context.Context, orchestrator *services.Orchestrator, opts analyzeOptions, stdout io.Writer) error {
	if opts.Format != "txt" && opts.Format != "pdf" {
		return fmt.Errorf("unsupported report format %q: use txt or pdf", opts.Format)
	}

	session := models.NewSession()
	if err := session.Start(); err != nil {
		return err
	}

	resumeText, filename := "", ""
	if opts.ResumePath == "" {
		if err := session.SetTestResume(orchestrator.BuildTestResume(models.TestResumeRequest{})); err != nil {
			return err
		}
	} else {
		text, err := readResume(opts.ResumePath, opts.MaxFileSize)
		if err != nil {
			return err
		}
		resumeText, filename = text, filepath.Base(opts.ResumePath)
	}

	if err := session.SubmitInput(opts.Company, opts.Role, resumeText, filename); err != nil {
		return err
	}

	result := orchestrator.Analyze(ctx, session.Input)
	if err := session.CompleteAnalysis(result); err != nil {
		return err
	}

	reports := services.NewReportBuilder()
	var report []byte
	if opts.Format == "pdf" {
		data, err := reports.BuildPDF(result, result.CompletedAt)
		if err != nil {
			return err
		}
		report = data
	} else {
		report = []byte(reports.Build(result, result.CompletedAt))
	}

	if opts.OutPath == "" {
		_, err := stdout.Write(report)
		return err
	}

	if err := os.WriteFile(opts.OutPath, report, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", opts.OutPath, err)
	}
	fmt.Fprintf(stdout, "Score: %.1f/10. Report written to %s\n", result.DisplayScore, opts.OutPath)

	return nil
}

func readResume(path string, maxFileSize int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume %s: %w", path, err)
	}
	if maxFileSize > 0 && info.Size() > maxFileSize {
		return "", fmt.Errorf("resume %s too large. Max size: %d bytes", path, maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume %s: %w", path, err)
	}

	extractor := services.NewDocumentExtractor()
	format, err := extractor.DetectFormat("", path, data)
	if err != nil {
		return "", err
	}

	return extractor.Extract(data, format)
}
