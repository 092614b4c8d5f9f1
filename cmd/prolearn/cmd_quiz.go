package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/prolearn/prolearn-go/internal/content"
	"github.com/prolearn/prolearn-go/internal/dto"
)

func (a *app) cmdQuiz(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println(`Quiz commands:

  prolearn quiz show <lessonId> <activityId>
  prolearn quiz submit <activityId> <answers>   answers like 0,2,1
  prolearn quiz attempts <activityId>           your attempts
  prolearn quiz results <activityId>            all attempts (teacher)
  prolearn quiz edit <activityId> <subcommand>  build a quiz via a local draft:
      show | add -text <t> -choices "a|b|c" -correct <i> [-points <n>]
      max-points <n> | publish | discard`)
		return nil
	}

	switch args[0] {
	case "show":
		if len(args) < 3 {
			return fmt.Errorf("usage: quiz show <lessonId> <activityId>")
		}
		return a.showQuiz(ctx, args[1], args[2])

	case "submit":
		if len(args) < 3 {
			return fmt.Errorf("usage: quiz submit <activityId> <answers>")
		}
		answers, err := parseAnswers(args[2])
		if err != nil {
			return err
		}
		result, err := a.api.SubmitQuiz(ctx, args[1], dto.QuizSubmitRequest{Answers: answers})
		if err != nil {
			return err
		}
		fmt.Printf("Wynik: %d/%d • %gpkt (%d%%)\n",
			result.Correct, result.Total, result.Points, int(result.Percent+0.5))
		return nil

	case "attempts":
		if len(args) < 2 {
			return fmt.Errorf("activity id required")
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}
		attempts, err := a.api.MyAttempts(ctx, args[1])
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			fmt.Println("Brak prób.")
			return nil
		}
		for _, at := range attempts {
			fmt.Printf("  %s — %d/%d (%gpkt)\n", at.CreatedAt, at.Correct, at.Total, at.Points)
		}
		return nil

	case "edit":
		if len(args) < 3 {
			return fmt.Errorf("usage: quiz edit <activityId> <show|add|max-points|publish|discard>")
		}
		return a.editQuiz(ctx, args[1], args[2], args[3:])

	case "results":
		if len(args) < 2 {
			return fmt.Errorf("activity id required")
		}
		attempts, err := a.api.ActivityAttempts(ctx, args[1])
		if err != nil {
			return err
		}
		for _, at := range attempts {
			fmt.Printf("  %s: %d/%d (%gpkt) %s\n", at.StudentID, at.Correct, at.Total, at.Points, at.CreatedAt)
		}
		return nil

	default:
		return fmt.Errorf("unknown quiz command: %s", args[0])
	}
}

func (a *app) showQuiz(ctx context.Context, lessonID, activityID string) error {
	detail, err := a.api.GetLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	for _, act := range detail.Activities {
		if act.ID != activityID {
			continue
		}
		if act.Type != dto.ActivityQuiz {
			return fmt.Errorf("activity %s is not a quiz", activityID)
		}
		quiz := content.ParseQuizBody(act.Body)
		if len(quiz.Questions) == 0 {
			fmt.Println("Nieprawidłowy quiz.")
			return nil
		}
		fmt.Printf("%s (%g pkt)\n", act.Title, quiz.MaxPoints)
		for qi, q := range quiz.Questions {
			fmt.Printf("  %d. %s (%g pkt)\n", qi+1, q.Text, q.Points)
			for ci, c := range q.Choices {
				fmt.Printf("     [%d] %s\n", ci, c.Text)
			}
		}
		fmt.Println("\nOdpowiedz przez: prolearn quiz submit " + activityID + " <indeksy,po,przecinku>")
		return nil
	}
	return fmt.Errorf("activity %s not found in lesson %s", activityID, lessonID)
}

// editQuiz builds a quiz incrementally through a draft stored in the local
// state database, so an interrupted session picks up where it stopped.
// publish pushes the finished body to the activity and discards the draft.
func (a *app) editQuiz(ctx context.Context, activityID, sub string, args []string) error {
	if _, err := a.requireSession(); err != nil {
		return err
	}

	quiz := content.QuizBody{MaxPoints: 10}
	found, err := a.store.LoadQuizDraft(activityID, &quiz)
	if err != nil {
		return err
	}

	switch sub {
	case "show":
		if !found {
			fmt.Println("Brak szkicu quizu.")
			return nil
		}
		fmt.Printf("Szkic quizu (%g pkt)\n", quiz.MaxPoints)
		for qi, q := range quiz.Questions {
			fmt.Printf("  %d. %s (%g pkt)\n", qi+1, q.Text, q.Points)
			for ci, c := range q.Choices {
				mark := " "
				if c.Correct {
					mark = "✔"
				}
				fmt.Printf("     [%d]%s %s\n", ci, mark, c.Text)
			}
		}
		return nil

	case "add":
		fs := flag.NewFlagSet("quiz edit add", flag.ContinueOnError)
		text := fs.String("text", "", "question text")
		choices := fs.String("choices", "", "answers separated by |")
		correct := fs.Int("correct", 0, "index of the correct answer")
		points := fs.Float64("points", 1, "points for the question")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if strings.TrimSpace(*text) == "" {
			return fmt.Errorf("question text required")
		}
		parts := strings.Split(*choices, "|")
		if len(parts) < 2 {
			return fmt.Errorf("at least two choices required, separated by |")
		}
		if *correct < 0 || *correct >= len(parts) {
			return fmt.Errorf("correct index %d out of range", *correct)
		}
		q := content.QuizQuestion{Text: *text, Points: *points}
		for i, p := range parts {
			q.Choices = append(q.Choices, content.QuizChoice{
				Text:    strings.TrimSpace(p),
				Correct: i == *correct,
			})
		}
		quiz.Questions = append(quiz.Questions, q)
		if err := a.store.SaveQuizDraft(activityID, quiz); err != nil {
			return err
		}
		fmt.Printf("Pytanie %d zapisane w szkicu.\n", len(quiz.Questions))
		return nil

	case "max-points":
		if len(args) < 1 {
			return fmt.Errorf("usage: quiz edit <activityId> max-points <n>")
		}
		n, err := strconv.ParseFloat(args[0], 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid max points %q", args[0])
		}
		quiz.MaxPoints = n
		if err := a.store.SaveQuizDraft(activityID, quiz); err != nil {
			return err
		}
		fmt.Printf("Pula punktów: %g\n", quiz.MaxPoints)
		return nil

	case "publish":
		if !found || len(quiz.Questions) == 0 {
			return fmt.Errorf("draft has no questions to publish")
		}
		quiz = quiz.Normalize()
		encoded, err := quiz.Encode()
		if err != nil {
			return err
		}
		if err := content.ValidateQuizBody(encoded); err != nil {
			return err
		}
		if _, err := a.api.UpdateActivity(ctx, activityID, dto.UpdateActivityRequest{Body: &encoded}); err != nil {
			return err
		}
		if err := a.store.DeleteQuizDraft(activityID); err != nil {
			a.logger.Warn().Err(err).Msg("failed to discard published quiz draft")
		}
		fmt.Printf("Opublikowano quiz (%d pytań, %g pkt).\n", len(quiz.Questions), quiz.MaxPoints)
		return nil

	case "discard":
		if err := a.store.DeleteQuizDraft(activityID); err != nil {
			return err
		}
		fmt.Println("Szkic usunięty.")
		return nil

	default:
		return fmt.Errorf("unknown quiz edit command: %s", sub)
	}
}

func parseAnswers(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	answers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid answer %q", p)
		}
		answers = append(answers, n)
	}
	return answers, nil
}
