package service

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// AppName appears in outbound mail.
const AppName = "MySewa"

//go:embed templates/*.txt
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.txt"))

type pinMail struct {
	App      string
	Name     string
	PIN      string
	ValidFor string
}

type invitationMail struct {
	App             string
	TenantName      string
	LandlordName    string
	PropertyTitle   string
	PropertyAddress string
	Start           string
	End             string
	MonthlyRent     string
	URL             string
	ExpiresAt       string
}

func renderMail(name string, data any) (string, error) {
	var b strings.Builder
	if err := mailTemplates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return b.String(), nil
}

// formatMinor renders minor currency units as a decimal amount.
func formatMinor(v int64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func formatDate(t time.Time) string { return t.UTC().Format("2006-01-02") }
