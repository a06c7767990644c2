package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sahayak/sahayak-backend/internal/client/api"
	"github.com/sahayak/sahayak-backend/internal/client/browser"
	"github.com/sahayak/sahayak-backend/internal/domain"
)

// Browse fetches the published list once, then filters and sorts locally
func (a *App) Browse(ctx context.Context) error {
	search, err := GetSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	subjects, err := a.client.ListSubjects(ctx, "", 0, search)
	if err != nil {
		fmt.Println("Failed to load subjects:", err)
		return err
	}

	departments := browser.Departments(subjects)
	fmt.Println("Departments:", departments)
	department, err := GetSimpleText(a.reader, "Department (empty for All)", os.Stdout)
	if err != nil {
		return err
	}

	order, err := GetSimpleText(a.reader,
		"Sort [semester-asc|semester-desc|name-asc|name-desc] (default semester-asc)", os.Stdout)
	if err != nil {
		return err
	}
	if order == "" {
		order = browser.SortSemesterAsc
	}

	filtered := browser.FilterByDepartment(subjects, department)
	browser.Sort(filtered, order)

	if len(filtered) == 0 {
		fmt.Println("No subjects match your filters.")
		return nil
	}

	for _, s := range filtered {
		fmt.Printf("  %-30s  sem %d  %-20s  /%s\n",
			s.Name, s.Course.Semester, s.Course.Department, s.Slug)
	}
	fmt.Printf("%d subject(s)\n", len(filtered))
	return nil
}

// Show renders one subject guide
func (a *App) Show(ctx context.Context, slug string) error {
	subject, err := a.client.GetSubject(ctx, slug)
	if err != nil {
		if api.IsNotFound(err) {
			fmt.Println("Subject not found:", slug)
			return nil
		}
		fmt.Println("Failed to load subject:", err)
		return err
	}

	printSubject(subject)
	return nil
}

// MySubmissions lists the caller's own submissions with review state
func (a *App) MySubmissions(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return nil
	}

	subjects, err := a.client.MySubjects(ctx)
	if err != nil {
		fmt.Println("Failed to load submissions:", err)
		return err
	}

	if len(subjects) == 0 {
		fmt.Println("No submissions yet.")
		return nil
	}

	for _, s := range subjects {
		state := "pending"
		if s.IsPublished {
			state = "published"
		} else if s.RejectionReason != "" {
			state = "rejected: " + s.RejectionReason
		}
		fmt.Printf("  %-30s  %s\n", s.Name, state)
	}
	return nil
}

func printSubject(s *domain.Subject) {
	fmt.Printf("\n%s (%s, semester %d)\n", s.Name, s.Course.Department, s.Course.Semester)
	fmt.Printf("Difficulty: %s | Nature: %s | Time: %s | Scoring: %s | Risk: %s\n",
		s.Overview.OverallDifficulty, s.Overview.NatureType, s.Overview.TimeRequired,
		s.Overview.ScoringPotential, s.Overview.RiskLevel)

	if s.Intro.AboutSubject != "" {
		fmt.Println("\nAbout:", s.Intro.AboutSubject)
	}
	if s.Intro.GeneralTips != "" {
		fmt.Println("Tips:", s.Intro.GeneralTips)
	}

	for _, u := range s.Units {
		skip := ""
		if u.SkipSafe {
			skip = " [skip-safe]"
		}
		fmt.Printf("\nUnit %d: %s (difficulty %s, scoring %s)%s\n",
			u.UnitNumber, u.Title, u.UnitDifficulty, u.ScoringValue, skip)
		for _, t := range u.Topics {
			fmt.Println("  -", t)
		}
	}

	if s.StudyModes.OneDay != "" {
		fmt.Println("\nOne day plan:", s.StudyModes.OneDay)
	}
	if s.MidsemStrategy != "" {
		fmt.Println("Midsem strategy:", s.MidsemStrategy)
	}
	if s.EndsemStrategy != "" {
		fmt.Println("Endsem strategy:", s.EndsemStrategy)
	}

	for _, m := range s.Materials {
		fmt.Printf("Material: %-30s %s (%s, %s)\n", m.Title, m.URL, m.Type, browser.ClassifyURL(m.URL))
	}
	if s.MidsemPyqURL != "" {
		fmt.Printf("Midsem PYQs: %s (%s)\n", s.MidsemPyqURL, browser.ClassifyURL(s.MidsemPyqURL))
	}
	if s.EndsemPyqURL != "" {
		fmt.Printf("Endsem PYQs: %s (%s)\n", s.EndsemPyqURL, browser.ClassifyURL(s.EndsemPyqURL))
	}

	if len(s.Authors) > 0 {
		fmt.Print("\nContributed by: ")
		for i, author := range s.Authors {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(author.DisplayName)
		}
		fmt.Println()
	}
}
