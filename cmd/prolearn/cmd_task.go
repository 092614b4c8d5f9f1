package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/prolearn/prolearn-go/internal/dto"
	"github.com/prolearn/prolearn-go/internal/editor"
	"github.com/prolearn/prolearn-go/internal/langcaps"
	"github.com/prolearn/prolearn-go/internal/policy"
)

func (a *app) cmdTask(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println(`Task commands:

  prolearn task show <taskId>
  prolearn task edit <taskId> [-title <t>] [-description <d>] [-max-points <n>]
                              [-language <lang>] [-starter-file <path>]
                              [-solution-file <path>] [-adopt-sum]`)
		return nil
	}

	switch args[0] {
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("task id required")
		}
		return a.showTask(ctx, args[1])
	case "edit":
		if len(args) < 2 {
			return fmt.Errorf("task id required")
		}
		return a.editTask(ctx, args[1], args[2:])
	default:
		return fmt.Errorf("unknown task command: %s", args[0])
	}
}

func (a *app) showTask(ctx context.Context, taskID string) error {
	teacher := a.sess != nil && a.sess.Role == string(dto.RoleTeacher)

	var task dto.PublicTask
	var err error
	if teacher {
		task, err = a.api.GetTeacherTask(ctx, taskID)
	} else {
		task, err = a.api.GetPublicTask(ctx, taskID)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s (%g pkt, %s)\n", task.Title, task.MaxPoints, task.Language)
	if strings.TrimSpace(task.Description) != "" {
		fmt.Println(task.Description)
	}
	if caps, ok := langcaps.Lookup(task.Language); ok {
		modes := "IO"
		if caps.SupportsEval {
			modes += ", EVAL"
		}
		fmt.Printf("Tryby testów: %s\n", modes)
	}
	if task.StarterCode != nil && strings.TrimSpace(*task.StarterCode) != "" {
		fmt.Printf("\nKod startowy:\n%s\n", *task.StarterCode)
	}
	if teacher && task.TeacherSolution != nil && strings.TrimSpace(*task.TeacherSolution) != "" {
		fmt.Printf("\nRozwiązanie wzorcowe:\n%s\n", *task.TeacherSolution)
	}

	latest := a.latestSubmission(ctx, taskID)
	gate := policy.Gate(&task, latest, a.sess != nil)
	fmt.Printf("\nPróby: %d/%d", gate.AttemptsUsed, gate.MaxAttempts)
	if gate.LimitReached {
		fmt.Print(" — limit wykorzystany")
	}
	fmt.Println()
	return nil
}

// latestSubmission returns the signed-in student's latest submission or nil.
func (a *app) latestSubmission(ctx context.Context, taskID string) *dto.Submission {
	if a.sess == nil {
		return nil
	}
	sub, err := a.api.MySubmissionForTask(ctx, taskID)
	if err != nil {
		return nil
	}
	if sub.ID == "" {
		return nil
	}
	return &sub
}

func (a *app) editTask(ctx context.Context, taskID string, args []string) error {
	fs := flag.NewFlagSet("task edit", flag.ContinueOnError)
	title := fs.String("title", "", "task title")
	description := fs.String("description", "", "task description")
	maxPoints := fs.Float64("max-points", -1, "maximum points")
	language := fs.String("language", "", "task language")
	starterFile := fs.String("starter-file", "", "file with starter code")
	solutionFile := fs.String("solution-file", "", "file with the teacher solution")
	adoptSum := fs.Bool("adopt-sum", false, "set max points to the current test total")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.requireSession(); err != nil {
		return err
	}

	task, err := a.api.GetTeacherTask(ctx, taskID)
	if err != nil {
		return err
	}
	tests, err := a.api.GetTests(ctx, taskID)
	if err != nil {
		return err
	}

	ed := editor.New(ctx, a.api, task, tests, a.logger)
	defer ed.Close()

	if *title != "" {
		ed.SetTitle(*title)
	}
	if *description != "" {
		ed.SetDescription(*description)
	}
	if *maxPoints >= 0 {
		ed.SetMaxPoints(*maxPoints)
	}
	if *language != "" {
		if _, ok := langcaps.Lookup(*language); !ok {
			return fmt.Errorf("unsupported language %q (supported: %s)", *language, strings.Join(langcaps.Supported, ", "))
		}
		ed.SetLanguage(*language)
	}
	if *starterFile != "" {
		code, err := os.ReadFile(*starterFile)
		if err != nil {
			return fmt.Errorf("read starter code: %w", err)
		}
		ed.SetStarterCode(string(code))
	}
	if *solutionFile != "" {
		code, err := os.ReadFile(*solutionFile)
		if err != nil {
			return fmt.Errorf("read solution: %w", err)
		}
		ed.SetTeacherSolution(string(code))
	}
	if *adoptSum {
		ed.AdoptSumAsMaxPoints()
	}

	if err := ed.Save(ctx); err != nil {
		return err
	}
	meta := ed.Meta()
	fmt.Printf("Zapisano zadanie %s (%g pkt, suma testów: %g)\n", meta.Title, meta.MaxPoints, ed.SumPoints())
	return nil
}

func (a *app) cmdTests(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Println(`Test commands:

  prolearn tests <taskId> list
  prolearn tests <taskId> add -input <i> -expected <e> [-points <n>] [-hidden] [-mode IO|EVAL]
  prolearn tests <taskId> set <testId> [-input <i>] [-expected <e>] [-points <n>] [-visible|-hidden]
  prolearn tests <taskId> del <testId>
  prolearn tests <taskId> move <testId> <newIndex>`)
		return nil
	}
	taskID := args[0]

	switch args[1] {
	case "list":
		tests, err := a.api.GetTests(ctx, taskID)
		if err != nil {
			return err
		}
		for _, t := range tests {
			visibility := "widoczny"
			if !t.Visible {
				visibility = "ukryty"
			}
			fmt.Printf("  %2d. [%s] %s → %s (%g pkt, %s, id: %s)\n",
				t.Ordering+1, t.Mode, whitespacePreview(t.Input), whitespacePreview(t.Expected),
				t.Points, visibility, t.ID)
		}
		return nil

	case "add", "set", "del", "move":
		return a.editTests(ctx, taskID, args[1:])

	default:
		return fmt.Errorf("unknown tests command: %s", args[1])
	}
}

// editTests drives the editor engine for one mutation and flushes before
// returning, so the change is persisted even though autosave is debounced.
func (a *app) editTests(ctx context.Context, taskID string, args []string) error {
	if _, err := a.requireSession(); err != nil {
		return err
	}
	task, err := a.api.GetTeacherTask(ctx, taskID)
	if err != nil {
		return err
	}
	tests, err := a.api.GetTests(ctx, taskID)
	if err != nil {
		return err
	}
	ed := editor.New(ctx, a.api, task, tests, a.logger)
	defer ed.Close()

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("tests add", flag.ContinueOnError)
		input := fs.String("input", "", "test input")
		expected := fs.String("expected", "", "expected output")
		points := fs.Float64("points", 1, "points for this test")
		hidden := fs.Bool("hidden", false, "hide details from students")
		mode := fs.String("mode", "IO", "IO or EVAL")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		row := ed.AddTest()
		ed.SetTestInput(row.LocalID, *input)
		ed.SetTestExpected(row.LocalID, *expected)
		ed.SetTestPoints(row.LocalID, *points)
		ed.SetTestVisible(row.LocalID, !*hidden)
		ed.SetTestMode(row.LocalID, dto.TestMode(strings.ToUpper(*mode)))

		if err := ed.Flush(ctx); err != nil {
			return err
		}
		for _, r := range ed.Tests() {
			if r.LocalID == row.LocalID {
				fmt.Printf("Dodano test %s (%g pkt, limit pozostały: %g)\n", r.ID, r.Points, ed.MaxAllowedPoints(r.LocalID))
			}
		}
		return nil

	case "set":
		if len(args) < 2 {
			return fmt.Errorf("test id required")
		}
		testID := args[1]
		fs := flag.NewFlagSet("tests set", flag.ContinueOnError)
		input := fs.String("input", "", "test input")
		expected := fs.String("expected", "", "expected output")
		points := fs.Float64("points", -1, "points for this test")
		visible := fs.Bool("visible", false, "show details to students")
		hidden := fs.Bool("hidden", false, "hide details from students")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}

		localID := ""
		for _, r := range ed.Tests() {
			if r.ID == testID {
				localID = r.LocalID
				break
			}
		}
		if localID == "" {
			return fmt.Errorf("unknown test %s", testID)
		}

		if *input != "" {
			ed.SetTestInput(localID, *input)
		}
		if *expected != "" {
			ed.SetTestExpected(localID, *expected)
		}
		if *points >= 0 {
			ed.SetTestPoints(localID, *points)
		}
		if *visible {
			ed.SetTestVisible(localID, true)
		}
		if *hidden {
			ed.SetTestVisible(localID, false)
		}
		if err := ed.Flush(ctx); err != nil {
			return err
		}
		fmt.Println("Zapisano test.")
		return nil

	case "del":
		if len(args) < 2 {
			return fmt.Errorf("test id required")
		}
		for _, r := range ed.Tests() {
			if r.ID == args[1] {
				if err := ed.DeleteTest(ctx, r.LocalID); err != nil {
					return err
				}
				if err := ed.Flush(ctx); err != nil {
					return err
				}
				fmt.Println("Usunięto test.")
				return nil
			}
		}
		return fmt.Errorf("unknown test %s", args[1])

	case "move":
		if len(args) < 3 {
			return fmt.Errorf("usage: tests <taskId> move <testId> <newIndex>")
		}
		newIndex, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[2])
		}
		for _, r := range ed.Tests() {
			if r.ID == args[1] {
				ed.MoveTest(r.LocalID, newIndex)
				if err := ed.Flush(ctx); err != nil {
					return err
				}
				fmt.Println("Przeniesiono test.")
				return nil
			}
		}
		return fmt.Errorf("unknown test %s", args[1])
	}
	return nil
}

// whitespacePreview makes newlines and tabs visible in one-line test listings.
func whitespacePreview(s string) string {
	s = strings.ReplaceAll(s, "\n", "␤")
	s = strings.ReplaceAll(s, "\t", "⇥")
	return shortText(s, 32)
}
