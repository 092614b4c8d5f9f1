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

func (a *app) cmdLessons(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Println(`Lesson commands:

  prolearn lessons list <classId>                 * marks the last viewed lesson
  prolearn lessons show <lessonId> [-class <id>]
  prolearn lessons create <classId> -title <t> [-content <c>]
  prolearn lessons delete <classId> <lessonId>
  prolearn lessons activity add <lessonId> -type CONTENT|TASK|QUIZ -title <t> ...
  prolearn lessons activity move <lessonId> <activityId> <newIndex>
  prolearn lessons activity delete <activityId>`)
		return nil
	}

	switch args[0] {
	case "list":
		classID, err := parseClassID(args[1:])
		if err != nil {
			return err
		}
		lessons, err := a.api.ListLessons(ctx, classID)
		if err != nil {
			return err
		}
		remembered, err := a.store.SelectedLessonFor(classID)
		if err != nil {
			return err
		}
		for _, l := range lessons {
			marker := "  "
			if l.ID == remembered {
				marker = "* "
			}
			fmt.Printf("%s%s — %s (treści: %d, zadania: %d, quizy: %d, pkt: %d)\n",
				marker, l.ID, l.Title, l.BlocksCount, l.TasksCount, l.QuizzesCount, l.MaxPoints)
		}
		return nil

	case "show":
		if len(args) < 2 {
			return fmt.Errorf("lesson id required")
		}
		fs := flag.NewFlagSet("lessons show", flag.ContinueOnError)
		classID := fs.Int64("class", 0, "class id; remembers this lesson as the last viewed one")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *classID != 0 {
			if err := a.store.SetSelectedLesson(*classID, args[1]); err != nil {
				a.logger.Warn().Err(err).Msg("failed to remember selected lesson")
			}
		}
		return a.showLesson(ctx, args[1])

	case "create":
		classID, err := parseClassID(args[1:])
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("lessons create", flag.ContinueOnError)
		title := fs.String("title", "", "lesson title")
		body := fs.String("content", "", "lesson description")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		l, err := a.api.CreateLesson(ctx, classID, dto.CreateLessonRequest{Title: *title, Content: *body})
		if err != nil {
			return err
		}
		fmt.Printf("Utworzono lekcję %s — %s\n", l.ID, l.Title)
		return nil

	case "delete":
		if len(args) < 3 {
			return fmt.Errorf("usage: lessons delete <classId> <lessonId>")
		}
		classID, err := parseClassID(args[1:])
		if err != nil {
			return err
		}
		if err := a.api.DeleteLesson(ctx, classID, args[2]); err != nil {
			return err
		}
		fmt.Println("Usunięto lekcję.")
		return nil

	case "activity":
		return a.cmdActivity(ctx, args[1:])

	default:
		return fmt.Errorf("unknown lessons command: %s", args[0])
	}
}

func (a *app) showLesson(ctx context.Context, lessonID string) error {
	detail, err := a.api.GetLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", detail.Title)
	if strings.TrimSpace(detail.Content) != "" {
		fmt.Printf("%s\n", detail.Content)
	}
	fmt.Println()
	for _, act := range detail.Activities {
		fmt.Printf("  %2d. [%s] %s (id: %s)\n", act.OrderIndex+1, act.Type, act.Title, act.ID)
		if act.Type == dto.ActivityContent {
			body := content.ParseBody(act.Body)
			for _, b := range body.Blocks {
				switch b.Type {
				case content.BlockMarkdown:
					fmt.Printf("      %s\n", shortText(b.MD, 120))
				case content.BlockImage:
					fmt.Printf("      [obraz] %s\n", b.Alt)
				case content.BlockEmbed:
					fmt.Printf("      [osadzenie] %s\n", b.URL)
				case content.BlockCode:
					fmt.Printf("      [kod %s, %d znaków]\n", b.Lang, len(b.Code))
				}
			}
			// Opening a content activity counts it as visited for progress.
			if a.sess != nil {
				if err := a.store.MarkVisited(lessonID, act.ID); err != nil {
					a.logger.Warn().Err(err).Msg("failed to mark content as visited")
				}
			}
		}
		if act.TaskID != nil {
			fmt.Printf("      zadanie: %s\n", *act.TaskID)
		}
	}
	return nil
}

func (a *app) cmdActivity(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("activity subcommand required (add, move, delete)")
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("lesson id required")
		}
		lessonID := args[1]
		fs := flag.NewFlagSet("activity add", flag.ContinueOnError)
		typ := fs.String("type", "CONTENT", "CONTENT, TASK or QUIZ")
		title := fs.String("title", "", "activity title")
		markdown := fs.String("markdown", "", "markdown text (CONTENT)")
		image := fs.String("image", "", "path to an illustration file (CONTENT)")
		imageAlt := fs.String("image-alt", "", "illustration alt text")
		code := fs.String("code", "", "example code block (CONTENT)")
		codeLang := fs.String("code-lang", "python", "example code language")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}

		req := dto.CreateActivityRequest{
			Type:  dto.ActivityType(strings.ToUpper(*typ)),
			Title: *title,
		}
		switch req.Type {
		case dto.ActivityContent:
			imgSrc := ""
			if *image != "" {
				block, err := content.ImageBlockFromFile(*image, *imageAlt)
				if err != nil {
					return err
				}
				imgSrc = block.Src
			}
			body := content.BuildBody(imgSrc, *imageAlt, *markdown, *codeLang, *code)
			encoded, err := body.Encode()
			if err != nil {
				return err
			}
			if err := content.ValidateBody(encoded); err != nil {
				return err
			}
			req.Body = &encoded
		case dto.ActivityQuiz:
			quiz := content.QuizBody{
				MaxPoints: 10,
				Questions: []content.QuizQuestion{{
					Text:    "Pytanie 1",
					Choices: []content.QuizChoice{{Text: "Odp A", Correct: true}, {Text: "Odp B"}},
					Points:  10,
				}},
			}
			encoded, err := quiz.Encode()
			if err != nil {
				return err
			}
			if err := content.ValidateQuizBody(encoded); err != nil {
				return err
			}
			req.Body = &encoded
		case dto.ActivityTask:
			created, err := a.api.CreateActivityWithTask(ctx, lessonID, dto.CreateActivityWithTaskRequest{
				Type:  dto.ActivityTask,
				Title: *title,
				Task: &dto.CreateTaskRequest{
					Title:     *title,
					MaxPoints: 10,
					Language:  a.cfg.DefaultLanguage,
				},
			})
			if err != nil {
				return err
			}
			fmt.Printf("Dodano aktywność %s", created.ID)
			if created.TaskID != nil {
				fmt.Printf(" (zadanie: %s)", *created.TaskID)
			}
			fmt.Println()
			return nil
		}

		created, err := a.api.CreateActivity(ctx, lessonID, req)
		if err != nil {
			return err
		}
		fmt.Printf("Dodano aktywność %s\n", created.ID)
		return nil

	case "move":
		if len(args) < 4 {
			return fmt.Errorf("usage: lessons activity move <lessonId> <activityId> <newIndex>")
		}
		newIndex, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[3])
		}
		ordered, err := a.api.MoveActivity(ctx, args[1], args[2], newIndex)
		if err != nil {
			return err
		}
		for _, act := range ordered {
			fmt.Printf("  %2d. [%s] %s\n", act.OrderIndex+1, act.Type, act.Title)
		}
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("activity id required")
		}
		if err := a.api.DeleteActivity(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Usunięto aktywność.")
		return nil

	default:
		return fmt.Errorf("unknown activity command: %s", args[0])
	}
}

func shortText(s string, max int) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
