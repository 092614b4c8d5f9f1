package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/prolearn/prolearn-go/internal/client"
	"github.com/prolearn/prolearn-go/internal/dto"
	"github.com/prolearn/prolearn-go/internal/messages"
	"github.com/prolearn/prolearn-go/internal/policy"
	"github.com/prolearn/prolearn-go/internal/runresult"
)

func (a *app) cmdRun(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("task id required")
	}
	taskID := args[0]

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	file := fs.String("file", "", "file with the solution code")
	language := fs.String("language", "", "language override")
	demo := fs.Bool("demo", false, "run the stored teacher solution instead")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	task, err := a.api.GetPublicTask(ctx, taskID)
	if err != nil {
		return err
	}
	latest := a.latestSubmission(ctx, taskID)
	gate := policy.Gate(&task, latest, a.sess != nil)
	if !*demo && !gate.CanRun {
		if a.sess == nil {
			return fmt.Errorf("%s", messages.LoginRequired)
		}
		return fmt.Errorf("%s", messages.RunUnavailable)
	}

	var outcome client.RunOutcome
	if *demo {
		outcome = a.api.RunDemo(ctx, taskID)
	} else {
		code, err := readCode(*file, task.StarterCode)
		if err != nil {
			return err
		}
		lang := *language
		if lang == "" {
			lang = task.Language
		}
		outcome = a.api.RunTask(ctx, taskID, dto.RunRequest{Code: code, Language: lang})
	}

	if outcome.Error != "" {
		fmt.Printf("Uruchomienie nie powiodło się: %s\n", messages.Localize(outcome.Error))
		return nil
	}

	results := runresult.Parse(outcome.Result)
	summary := runresult.Summarize(results)
	fmt.Println(summary.String())

	// Show a focused diff for the first visible failure.
	for _, t := range results {
		if t.Passed != nil && !*t.Passed && t.Expected != nil && t.Actual != nil {
			if diff := runresult.MiniDiff(*t.Expected, *t.Actual); diff != "" {
				fmt.Printf("\n%s\n", diff)
			}
			break
		}
	}
	return nil
}

func (a *app) cmdSubmit(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("task id required")
	}
	taskID := args[0]

	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	file := fs.String("file", "", "file with the solution code")
	yes := fs.Bool("yes", false, "skip the attempt confirmation prompt")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if _, err := a.requireSession(); err != nil {
		return err
	}

	task, err := a.api.GetPublicTask(ctx, taskID)
	if err != nil {
		return err
	}
	latest := a.latestSubmission(ctx, taskID)
	gate := policy.Gate(&task, latest, true)
	if !gate.CanSubmit {
		return fmt.Errorf("%s", messages.AttemptsExhausted)
	}

	code, err := readCode(*file, task.StarterCode)
	if err != nil {
		return err
	}

	if !*yes {
		fmt.Printf("Oddajesz próbę %d z %d. Kontynuować? [t/N] ", gate.AttemptsUsed+1, gate.MaxAttempts)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "t" && answer != "tak" && answer != "y" && answer != "yes" {
			fmt.Println("Anulowano.")
			return nil
		}
	}

	sub, err := a.api.Submit(ctx, taskID, dto.SubmitRequest{Content: code, Code: code})
	if err != nil {
		return err
	}

	fmt.Printf("Wysłano (status: %s", sub.Status)
	if sub.AttemptNumber != nil {
		fmt.Printf(", próba %d", *sub.AttemptNumber)
	}
	if score := effectiveScore(sub); score != nil {
		fmt.Printf(", wynik: %g", *score)
		if sub.MaxPoints != nil {
			fmt.Printf("/%g", *sub.MaxPoints)
		}
	}
	fmt.Println(")")

	if sub.TestReport != nil && *sub.TestReport != "" {
		summary := runresult.Summarize(runresult.Parse(*sub.TestReport))
		fmt.Println(summary.String())
	} else if sub.Stdout != nil && *sub.Stdout != "" {
		fmt.Printf("Wyjście:\n%s\n", *sub.Stdout)
	}
	return nil
}

func (a *app) cmdGrade(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("submission id required")
	}
	submissionID := args[0]

	fs := flag.NewFlagSet("grade", flag.ContinueOnError)
	score := fs.Float64("score", -1, "manual score; omit to clear the override")
	comment := fs.String("comment", "", "teacher comment")
	clear := fs.Bool("clear", false, "clear the manual override")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if _, err := a.requireSession(); err != nil {
		return err
	}

	req := dto.GradeRequest{TeacherComment: *comment}
	if !*clear && *score >= 0 {
		req.ManualScore = score
	}
	sub, err := a.api.GradeSubmission(ctx, submissionID, req)
	if err != nil {
		return err
	}
	fmt.Printf("Oceniono (status: %s", sub.Status)
	if s := effectiveScore(sub); s != nil {
		fmt.Printf(", wynik: %g", *s)
	}
	fmt.Println(")")
	return nil
}

func effectiveScore(s dto.Submission) *float64 {
	if s.EffectiveScore != nil {
		return s.EffectiveScore
	}
	if s.ManualScore != nil {
		return s.ManualScore
	}
	return s.AutoScore
}

// readCode loads the solution from a file, or falls back to the starter code
// so run can be tried without writing anything yet.
func readCode(file string, starter *string) (string, error) {
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read code: %w", err)
		}
		return string(raw), nil
	}
	if starter != nil {
		return *starter, nil
	}
	return "", fmt.Errorf("no code given; pass -file <path>")
}
