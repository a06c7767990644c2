package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sahayak/sahayak-backend/internal/client/wizard"
	"github.com/sahayak/sahayak-backend/internal/domain"
)

// Contribute runs the five-step submission wizard. Progress is saved to
// the draft file after every step, so an interrupted session resumes
// where it left off.
func (a *App) Contribute(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first")
		return nil
	}

	w, err := wizard.New(a.client, a.drafts)
	if err != nil {
		return err
	}
	if w.Resumed() {
		fmt.Printf("Resuming draft at step: %s\n", wizard.StepName(w.Step()))
	}

	for {
		fmt.Printf("\n--- Step %d/5: %s ---\n", w.Step()+1, wizard.StepName(w.Step()))

		switch w.Step() {
		case wizard.StepBasicInfo:
			if err := a.stepBasicInfo(w); err != nil {
				return err
			}
		case wizard.StepOverview:
			if err := a.stepOverview(w); err != nil {
				return err
			}
		case wizard.StepIntro:
			if err := a.stepIntro(w); err != nil {
				return err
			}
		case wizard.StepUnits:
			if err := a.stepUnits(w); err != nil {
				return err
			}
		case wizard.StepStrategies:
			if err := a.stepStrategies(w); err != nil {
				return err
			}
		}

		if w.IsFinal() {
			ok, err := Confirm(a.reader, "Submit for review?", os.Stdout)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Draft saved. Run 'contribute' again to continue.")
				return w.Commit()
			}

			id, err := w.Submit(ctx)
			if err != nil {
				fmt.Println("Submission failed:", err)
				fmt.Println("Your draft has been kept.")
				return err
			}
			fmt.Println("Submitted for review, id:", id)
			return nil
		}

		action, err := GetSimpleText(a.reader, "[n]ext / [b]ack / [q]uit (draft is saved)", os.Stdout)
		if err != nil {
			return err
		}
		switch strings.ToLower(action) {
		case "b", "back":
			if err := w.Back(); err != nil {
				return err
			}
		case "q", "quit":
			fmt.Println("Draft saved.")
			return w.Commit()
		default:
			if err := w.Next(); err != nil {
				return err
			}
		}
	}
}

// ask reads a field, keeping the current value when input is empty
func (a *App) ask(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	text, err := GetSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	if text == "" {
		return current, nil
	}
	return text, nil
}

func (a *App) stepBasicInfo(w *wizard.Wizard) error {
	p := w.Payload()
	var err error
	if p.Name, err = a.ask("Subject name", p.Name); err != nil {
		return err
	}
	if p.Slug, err = a.ask("Slug (url-friendly)", p.Slug); err != nil {
		return err
	}
	if p.Course.CourseID, err = a.ask("Course code", p.Course.CourseID); err != nil {
		return err
	}
	if p.Course.CourseName, err = a.ask("Course name", p.Course.CourseName); err != nil {
		return err
	}
	if p.Course.Department, err = a.ask("Department", p.Course.Department); err != nil {
		return err
	}
	semester, err := GetInt(a.reader, fmt.Sprintf("Semester [%d]", p.Course.Semester), p.Course.Semester, os.Stdout)
	if err != nil {
		return err
	}
	p.Course.Semester = semester
	return w.Commit()
}

func (a *App) stepOverview(w *wizard.Wizard) error {
	p := w.Payload()
	if p.Overview == nil {
		defaults := domain.DefaultOverview()
		p.Overview = &defaults
	}
	var err error
	if p.Overview.OverallDifficulty, err = a.ask("Overall difficulty", p.Overview.OverallDifficulty); err != nil {
		return err
	}
	if p.Overview.NatureType, err = a.ask("Nature (theory/numerical/mixed)", p.Overview.NatureType); err != nil {
		return err
	}
	if p.Overview.TimeRequired, err = a.ask("Time required", p.Overview.TimeRequired); err != nil {
		return err
	}
	if p.Overview.ScoringPotential, err = a.ask("Scoring potential", p.Overview.ScoringPotential); err != nil {
		return err
	}
	if p.Overview.RiskLevel, err = a.ask("Risk level", p.Overview.RiskLevel); err != nil {
		return err
	}
	return w.Commit()
}

func (a *App) stepIntro(w *wizard.Wizard) error {
	p := w.Payload()
	var err error
	if p.Intro.AboutSubject, err = a.ask("About the subject", p.Intro.AboutSubject); err != nil {
		return err
	}
	if p.Intro.GeneralTips, err = a.ask("General tips", p.Intro.GeneralTips); err != nil {
		return err
	}
	if p.Intro.ThingsToKeepInMind, err = a.ask("Things to keep in mind", p.Intro.ThingsToKeepInMind); err != nil {
		return err
	}
	return w.Commit()
}

func (a *App) stepUnits(w *wizard.Wizard) error {
	p := w.Payload()
	for i := 0; i < len(p.Units); i++ {
		if err := a.editUnit(w, i); err != nil {
			return err
		}

		if i == len(p.Units)-1 {
			addUnit, err := Confirm(a.reader, "Add another unit?", os.Stdout)
			if err != nil {
				return err
			}
			if addUnit {
				w.AddUnit()
			}
		}
	}
	return w.Commit()
}

func (a *App) editUnit(w *wizard.Wizard, i int) error {
	u := &w.Payload().Units[i]
	fmt.Printf("\nUnit %d\n", u.UnitNumber)

	var err error
	if u.Title, err = a.ask("Title", u.Title); err != nil {
		return err
	}
	if u.UnitDifficulty, err = a.ask("Difficulty", u.UnitDifficulty); err != nil {
		return err
	}
	if u.ScoringValue, err = a.ask("Scoring value", u.ScoringValue); err != nil {
		return err
	}
	skipSafe, err := Confirm(a.reader, "Safe to skip?", os.Stdout)
	if err != nil {
		return err
	}
	u.SkipSafe = skipSafe

	for j := range u.Topics {
		if u.Topics[j], err = a.ask(fmt.Sprintf("Topic %d", j+1), u.Topics[j]); err != nil {
			return err
		}
	}
	more, err := Confirm(a.reader, "Add another topic to this unit?", os.Stdout)
	if err != nil {
		return err
	}
	for more {
		w.AddTopic(i)
		u = &w.Payload().Units[i]
		topic, err := a.ask(fmt.Sprintf("Topic %d", len(u.Topics)), "")
		if err != nil {
			return err
		}
		u.Topics[len(u.Topics)-1] = topic
		if more, err = Confirm(a.reader, "Add another topic?", os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) stepStrategies(w *wizard.Wizard) error {
	p := w.Payload()
	var err error
	if p.StudyModes.OneDay, err = a.ask("One-day plan", p.StudyModes.OneDay); err != nil {
		return err
	}
	if p.StudyModes.ThreeDay, err = a.ask("Three-day plan", p.StudyModes.ThreeDay); err != nil {
		return err
	}
	if p.StudyModes.FullPrep, err = a.ask("Full preparation plan", p.StudyModes.FullPrep); err != nil {
		return err
	}
	if p.StudyModes.NinePlusMode, err = a.ask("9+ pointer plan", p.StudyModes.NinePlusMode); err != nil {
		return err
	}
	if p.MidsemStrategy, err = a.ask("Midsem strategy", p.MidsemStrategy); err != nil {
		return err
	}
	if p.EndsemStrategy, err = a.ask("Endsem strategy", p.EndsemStrategy); err != nil {
		return err
	}
	if p.SyllabusImageURL, err = a.ask("Syllabus image URL", p.SyllabusImageURL); err != nil {
		return err
	}
	if p.MidsemPyqURL, err = a.ask("Midsem PYQ URL", p.MidsemPyqURL); err != nil {
		return err
	}
	if p.EndsemPyqURL, err = a.ask("Endsem PYQ URL", p.EndsemPyqURL); err != nil {
		return err
	}

	addMaterial, err := Confirm(a.reader, "Add a study material link?", os.Stdout)
	if err != nil {
		return err
	}
	for addMaterial {
		var m domain.Material
		if m.Title, err = a.ask("Material title", ""); err != nil {
			return err
		}
		if m.URL, err = a.ask("Material URL", ""); err != nil {
			return err
		}
		if m.Type, err = a.ask("Type (document/video/link)", domain.MaterialLink); err != nil {
			return err
		}
		p.Materials = append(p.Materials, m)

		if addMaterial, err = Confirm(a.reader, "Add another material?", os.Stdout); err != nil {
			return err
		}
	}
	return w.Commit()
}
