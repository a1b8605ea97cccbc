package db

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/avolkov/claimdesk/model"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
)

var seedForms = []model.FormDefinition{
	{Code: "AHC-0913", Name: "Physician Claim Submission", Description: "Standard fee-for-service physician claim", Category: "claims", ClaimType: "physician", Version: 4, Active: true},
	{Code: "AHC-0914", Name: "Out-of-Province Claim", Description: "Claims for services rendered outside the province", Category: "claims", ClaimType: "out_of_province", Version: 2, Active: true},
	{Code: "AHC-1022", Name: "Newborn Registration", Description: "Coverage registration for newborns", Category: "registration", ClaimType: "", Version: 7, Active: true},
	{Code: "AHC-1260", Name: "Coverage Cancellation", Description: "Cancel plan coverage on departure", Category: "registration", ClaimType: "", Version: 3, Active: true},
	{Code: "AHC-2101", Name: "Diagnostic Imaging Requisition", Description: "Requisition for diagnostic imaging services", Category: "clinical", ClaimType: "diagnostic", Version: 1, Active: true},
	{Code: "AHC-2145", Name: "Allied Health Claim", Description: "Claims for allied health practitioners", Category: "claims", ClaimType: "allied", Version: 5, Active: false},
	{Code: "AHC-3310", Name: "Provider Enrollment", Description: "Enroll a new provider into the plan", Category: "providers", ClaimType: "", Version: 9, Active: true},
	{Code: "AHC-3317", Name: "Provider Banking Update", Description: "Update provider payment details", Category: "providers", ClaimType: "", Version: 2, Active: true},
	{Code: "AHC-4400", Name: "Claim Reassessment Request", Description: "Request reassessment of an adjudicated claim", Category: "claims", ClaimType: "physician", Version: 6, Active: true},
	{Code: "AHC-5001", Name: "Legacy Batch Submission", Description: "Retired batch submission cover sheet", Category: "claims", ClaimType: "batch", Version: 11, Active: false},
}

var seedReports = []model.Report{
	{Slug: "claims-volume", Title: "Claims Volume", Description: "Submitted claims per day, grouped by claim type", Category: "claims"},
	{Slug: "adjudication-outcomes", Title: "Adjudication Outcomes", Description: "Approval and denial rates across adjudication rules", Category: "claims"},
	{Slug: "provider-activity", Title: "Provider Activity", Description: "Billing activity per enrolled provider", Category: "providers"},
	{Slug: "phi-access", Title: "PHI Access Review", Description: "All PHI access events for compliance review", Category: "compliance"},
	{Slug: "audit-summary", Title: "Audit Summary", Description: "Audit trail totals by action and actor role", Category: "compliance"},
	{Slug: "form-usage", Title: "Form Usage", Description: "Submission counts per active form definition", Category: "forms"},
}

var seedActors = []struct {
	email string
	role  string
}{
	{"m.osei@ahcip.example", "admin"},
	{"j.tremblay@ahcip.example", "auditor"},
	{"a.kowalski@ahcip.example", "adjudicator"},
	{"l.chen@ahcip.example", "adjudicator"},
	{"r.gagnon@ahcip.example", "clerk"},
}

// auditTemplates pair an action with its description shape; the seed
// cycles through them to get a plausible mixed trail.
// Subject kinds for audit templates.
const (
	subjectNone  = ""
	subjectClaim = "claim"
	subjectForm  = "form"
)

var auditTemplates = []struct {
	action      string
	description string
	phi         bool
	subject     string
}{
	{model.ActionUserLogin, "Signed in", false, subjectNone},
	{model.ActionClaimSubmitted, "Submitted claim for adjudication", false, subjectClaim},
	{model.ActionClaimAdjudicated, "Claim adjudicated by rule engine", false, subjectClaim},
	{model.ActionClaimApproved, "Claim approved for payment", false, subjectClaim},
	{model.ActionPHIAccessed, "Viewed patient coverage record", true, subjectClaim},
	{model.ActionClaimDenied, "Claim denied: service not covered", false, subjectClaim},
	{model.ActionFormUpdated, "Published new form version", false, subjectForm},
	{model.ActionUserLoginFailed, "Failed sign-in attempt", false, subjectNone},
	{model.ActionPHIExported, "Exported coverage extract", true, subjectNone},
	{model.ActionSettingsChanged, "Changed adjudication threshold", false, subjectNone},
}

// Seed fills storage with a deterministic sample dataset sized by
// auditEntries. IDs are random but everything else is stable, so the
// UI looks the same on every fresh database.
func Seed(storage Storage, auditEntries int) error {
	now := time.Now().UTC().Truncate(time.Minute)

	for i, form := range seedForms {
		form.ID = uuid.NewString()
		form.UpdatedAt = now.AddDate(0, 0, -(i*11 + 3))

		if err := storage.InsertForm(&form); err != nil {
			return err
		}
	}

	for _, report := range seedReports {
		report.ID = uuid.NewString()

		if err := storage.InsertReport(&report); err != nil {
			return err
		}
	}

	if err := seedRuns(storage, now); err != nil {
		return err
	}

	bar := progressbar.Default(int64(auditEntries), "Seeding audit trail...")

	for i := 0; i < auditEntries; i++ {
		tpl := auditTemplates[i%len(auditTemplates)]
		actor := seedActors[i%len(seedActors)]

		entry := model.AuditEntry{
			ID:          uuid.NewString(),
			Action:      tpl.action,
			Description: tpl.description,
			ActorEmail:  actor.email,
			ActorRole:   actor.role,
			IPAddress:   fmt.Sprintf("10.42.%d.%d", i%8, 10+i%200),
			PHIAccessed: tpl.phi,
			CreatedAt:   now.Add(-time.Duration(i) * 17 * time.Minute),
		}
		switch tpl.subject {
		case subjectClaim:
			entry.SubjectCode = fmt.Sprintf("CLM-%07d", 2400000+i)
		case subjectForm:
			entry.SubjectCode = seedForms[i%len(seedForms)].Code
		}

		if err := storage.InsertAuditEntry(&entry); err != nil {
			return err
		}

		if err := bar.Add(1); err != nil {
			slog.Error("could not update progress bar", "error", err)
		}
	}

	return nil
}

func seedRuns(storage Storage, now time.Time) error {
	statuses := []string{
		model.RunCompleted, model.RunCompleted, model.RunFailed,
		model.RunCompleted, model.RunRunning, model.RunQueued,
	}

	for i, report := range seedReports {
		status := statuses[i%len(statuses)]
		started := now.Add(-time.Duration(i+1) * 6 * time.Hour)

		run := model.ReportRun{
			ID:          uuid.NewString(),
			ReportSlug:  report.Slug,
			RequestedBy: seedActors[i%len(seedActors)].email,
			Status:      status,
			StartedAt:   started,
		}

		if status == model.RunCompleted {
			run.RowCount = 120*i + 48
			run.FinishedAt = started.Add(4 * time.Minute)
		}

		if status == model.RunFailed {
			run.FinishedAt = started.Add(30 * time.Second)
		}

		if err := storage.InsertReportRun(&run); err != nil {
			return err
		}
	}

	return nil
}
