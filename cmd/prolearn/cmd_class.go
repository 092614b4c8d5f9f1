package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/prolearn/prolearn-go/internal/dto"
)

func (a *app) cmdClasses(ctx context.Context, args []string) error {
	if len(args) < 1 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		if _, err := a.requireSession(); err != nil {
			return err
		}
		classes, err := a.api.MyClasses(ctx)
		if err != nil {
			return err
		}
		if len(classes) == 0 {
			fmt.Println("Brak klas.")
			return nil
		}
		for _, c := range classes {
			line := fmt.Sprintf("  [%d] %s", c.ID, c.Name)
			if c.JoinCode != nil {
				line += fmt.Sprintf(" (kod: %s)", *c.JoinCode)
			}
			fmt.Println(line)
		}
		return nil

	case "create":
		if len(args) < 2 {
			return fmt.Errorf("class name required")
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}
		c, err := a.api.CreateClass(ctx, dto.CreateClassRequest{Name: strings.Join(args[1:], " ")})
		if err != nil {
			return err
		}
		fmt.Printf("Utworzono klasę [%d] %s", c.ID, c.Name)
		if c.JoinCode != nil {
			fmt.Printf(" — kod dołączenia: %s", *c.JoinCode)
		}
		fmt.Println()
		return nil

	case "join":
		if len(args) < 2 {
			return fmt.Errorf("join code required")
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}
		c, err := a.api.JoinClass(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Dołączono do klasy [%d] %s\n", c.ID, c.Name)
		return nil

	case "leave":
		classID, err := parseClassID(args[1:])
		if err != nil {
			return err
		}
		if _, err := a.requireSession(); err != nil {
			return err
		}
		if err := a.api.LeaveClass(ctx, classID); err != nil {
			return err
		}
		fmt.Println("Opuszczono klasę.")
		return nil

	case "members":
		classID, err := parseClassID(args[1:])
		if err != nil {
			return err
		}
		members, err := a.api.ClassMembers(ctx, classID)
		if err != nil {
			return err
		}
		for _, m := range members {
			name := strings.TrimSpace(deref(m.FirstName) + " " + deref(m.LastName))
			if name == "" {
				name = m.Email
			}
			fmt.Printf("  %s <%s> %s (id: %s)\n", name, m.Email, m.Role, m.ID)
		}
		return nil

	case "remove":
		if len(args) < 3 {
			return fmt.Errorf("usage: classes remove <classId> <userId>")
		}
		classID, err := parseClassID(args[1:])
		if err != nil {
			return err
		}
		if err := a.api.RemoveClassMember(ctx, classID, args[2]); err != nil {
			return err
		}
		fmt.Println("Usunięto ucznia z klasy.")
		return nil

	case "delete":
		classID, err := parseClassID(args[1:])
		if err != nil {
			return err
		}
		if err := a.api.DeleteClass(ctx, classID); err != nil {
			return err
		}
		fmt.Println("Usunięto klasę.")
		return nil

	default:
		return fmt.Errorf("unknown classes command: %s", args[0])
	}
}

func parseClassID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("class id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid class id %q", args[0])
	}
	return id, nil
}
