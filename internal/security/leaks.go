// Package security scans generated content for leaked secrets before it is
// committed
package security

import (
	"fmt"
	"strings"

	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"
)

// LeakScanner provides secret detection capabilities
type LeakScanner struct {
	detector *detect.Detector
}

// ScanResult contains the results of a leak scan
type ScanResult struct {
	Findings []Finding
	HasLeaks bool
	Source   string
}

// Finding represents a detected secret
type Finding struct {
	RuleID      string
	Description string
	Line        int
	Secret      string // Redacted
}

// NewLeakScanner creates a new leak scanner with default gitleaks rules
func NewLeakScanner() (*LeakScanner, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load gitleaks config: %w", err)
	}

	detector.Redact = 80 // Redact 80% of the secret

	return &LeakScanner{
		detector: detector,
	}, nil
}

// ScanContent scans an in-memory document. name only labels the result.
func (s *LeakScanner) ScanContent(name string, content []byte) *ScanResult {
	findings := s.detector.DetectBytes(content)
	return buildResult(findings, name)
}

func buildResult(findings []report.Finding, source string) *ScanResult {
	result := &ScanResult{
		Source:   source,
		HasLeaks: len(findings) > 0,
		Findings: make([]Finding, 0, len(findings)),
	}

	for _, f := range findings {
		result.Findings = append(result.Findings, Finding{
			RuleID:      f.RuleID,
			Description: f.Description,
			Line:        f.StartLine,
			Secret:      f.Secret, // Already redacted by detector
		})
	}

	return result
}

// FormatFindings formats findings for display
func FormatFindings(findings []Finding) string {
	if len(findings) == 0 {
		return ""
	}

	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "found %d potential secret(s):\n", len(findings))

	for i, f := range findings {
		_, _ = fmt.Fprintf(&sb, "  %d. %s (rule %s, line %d): %s\n", i+1, f.Description, f.RuleID, f.Line, f.Secret)
	}

	return sb.String()
}
