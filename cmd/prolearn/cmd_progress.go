package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/prolearn/prolearn-go/internal/dto"
	"github.com/prolearn/prolearn-go/internal/progress"
)

func (a *app) cmdProgress(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println(`Progress commands:

  prolearn progress lesson <lessonId>     Your progress within a lesson
  prolearn progress class <classId> [lessonId]   Defaults to the last viewed lesson
  prolearn progress overview <classId>`)
		return nil
	}

	switch args[0] {
	case "lesson":
		if len(args) < 2 {
			return fmt.Errorf("lesson id required")
		}
		return a.lessonProgress(ctx, args[1])
	case "class":
		classID, err := parseClassID(args[1:])
		if err != nil {
			return err
		}
		lessonID := ""
		if len(args) > 2 {
			lessonID = args[2]
		}
		return a.classProgress(ctx, classID, lessonID)
	case "overview":
		classID, err := parseClassID(args[1:])
		if err != nil {
			return err
		}
		return a.classOverview(ctx, classID)
	default:
		return fmt.Errorf("unknown progress command: %s", args[0])
	}
}

func (a *app) lessonProgress(ctx context.Context, lessonID string) error {
	if _, err := a.requireSession(); err != nil {
		return err
	}

	detail, err := a.api.GetLesson(ctx, lessonID)
	if err != nil {
		return err
	}

	subs, err := a.api.MySubmissions(ctx)
	if err != nil {
		return err
	}
	latest := progress.LatestPerTask(subs)

	quizAttempted := map[string]bool{}
	for _, act := range detail.Activities {
		if act.Type != dto.ActivityQuiz {
			continue
		}
		attempts, err := a.api.MyAttempts(ctx, act.ID)
		if err != nil {
			continue
		}
		if len(attempts) > 0 {
			quizAttempted[act.ID] = true
		}
	}

	visited, err := a.store.VisitedActivities(lessonID)
	if err != nil {
		return err
	}

	report := progress.Compute(detail, progress.Inputs{
		SubmissionsByTask: latest,
		QuizAttempted:     quizAttempted,
		Visited:           visited,
	})

	fmt.Printf("%s\n%s\n", detail.Title, progress.Bar(report.Percent, 24))
	fmt.Printf("  Treści: %d/%d  Quizy: %d/%d  Zadania: %d/%d\n",
		report.Content.Completed, report.Content.Total,
		report.Quiz.Completed, report.Quiz.Total,
		report.Task.Completed, report.Task.Total)

	for _, act := range detail.Activities {
		if act.Type != dto.ActivityTask || act.TaskID == nil {
			continue
		}
		var sub *dto.Submission
		if s, ok := latest[*act.TaskID]; ok {
			sub = &s
		}
		earned := 0.0
		maxPoints := 0.0
		if sub != nil {
			earned = progress.EarnedPoints(*sub)
			if sub.MaxPoints != nil {
				maxPoints = *sub.MaxPoints
			}
		}
		fmt.Printf("  %s — %s\n", act.Title, progress.TaskStatus(sub, earned, maxPoints))
	}
	return nil
}

func (a *app) classProgress(ctx context.Context, classID int64, lessonID string) error {
	// Without an explicit lesson, reuse the one last viewed for this class.
	if lessonID == "" {
		remembered, err := a.store.SelectedLessonFor(classID)
		if err != nil {
			return err
		}
		if remembered != "" {
			lessonID = remembered
			fmt.Printf("Lekcja: %s (ostatnio oglądana)\n", lessonID)
		}
	}

	matrix, err := a.api.ClassProgress(ctx, classID, lessonID)
	if err != nil {
		return err
	}
	if lessonID != "" {
		if err := a.store.SetSelectedLesson(classID, lessonID); err != nil {
			a.logger.Warn().Err(err).Msg("failed to remember selected lesson")
		}
	}

	byCell := make(map[string]dto.ClassProgressResult, len(matrix.Results))
	for _, r := range matrix.Results {
		byCell[r.StudentID+"|"+r.TaskID] = r
	}

	for _, s := range matrix.Students {
		fmt.Println(studentLabel(s))
		for _, t := range matrix.Tasks {
			cell, ok := byCell[s.StudentID+"|"+t.TaskID]
			if !ok {
				fmt.Printf("    %s: —\n", t.Title)
				continue
			}
			line := fmt.Sprintf("    %s: %s", t.Title, cell.Status)
			if cell.Points != nil {
				line += fmt.Sprintf(" (%g", *cell.Points)
				if t.MaxPoints != nil {
					line += fmt.Sprintf("/%g", *t.MaxPoints)
				}
				line += " pkt)"
			}
			fmt.Println(line)
		}
	}
	return nil
}

func (a *app) classOverview(ctx context.Context, classID int64) error {
	overview, err := a.api.ClassProgressOverview(ctx, classID)
	if err != nil {
		return err
	}

	byCell := make(map[string]dto.OverviewResult, len(overview.Results))
	for _, r := range overview.Results {
		byCell[r.StudentID+"|"+r.LessonID] = r
	}

	for _, s := range overview.Students {
		fmt.Println(studentLabel(s))
		for _, l := range overview.Lessons {
			cell, ok := byCell[s.StudentID+"|"+l.LessonID]
			if !ok {
				fmt.Printf("    %s: 0/%d zadań\n", l.Title, l.TotalTasks)
				continue
			}
			fmt.Printf("    %s: %d/%d zadań, %g/%g pkt\n",
				l.Title, cell.TasksCompleted, cell.TotalTasks, cell.PointsEarned, cell.MaxPoints)
		}
	}
	return nil
}

func studentLabel(s dto.ClassStudent) string {
	name := strings.TrimSpace(deref(s.FirstName) + " " + deref(s.LastName))
	if name == "" {
		name = deref(s.Email)
	}
	if name == "" {
		name = s.StudentID
	}
	return name
}
