package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"yatube/app/cache"
	"yatube/app/media"
	"yatube/app/models"
	"yatube/app/services"

	"github.com/pkg/errors"
)

// withServices opens the store and media backend, runs fn and prints its
// error, if any.
func withServices(fn func(svc *services.Services) error) int {
	store, _, err := openStore()
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	files, err := media.New(cfg)
	if err != nil {
		fmt.Printf("Failed to open media storage: %v\n", err)
		return 1
	}

	if err := fn(services.New(store, files)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return 0
}

func userCommand(args []string) int {
	if len(args) == 1 && args[0] == "list" {
		return withServices(listUsers)
	}
	if len(args) < 2 {
		fmt.Println("Usage: yatube user create <username> <password> | user delete <username> | user list")
		return 1
	}
	switch args[0] {
	case "create":
		if len(args) < 3 {
			fmt.Println("Error: username and password required")
			return 1
		}
		return withServices(func(svc *services.Services) error {
			user := &models.User{Username: args[1]}
			if err := svc.Users.Register(user, args[2]); err != nil {
				return err
			}
			fmt.Printf("User %s created with id %d\n", user.Username, user.ID)
			return nil
		})
	case "delete":
		return withServices(func(svc *services.Services) error {
			user, err := svc.Users.GetByUsername(args[1])
			if err != nil {
				return notFound("user", args[1], err)
			}
			if err := svc.Users.DeleteUser(context.Background(), user.ID); err != nil {
				return err
			}
			fmt.Printf("User %s deleted\n", user.Username)
			return nil
		})
	}
	fmt.Printf("Unknown user command: %s\n", args[0])
	return 1
}

func listUsers(svc *services.Services) error {
	users, err := svc.Users.ListUsers()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No users")
		return nil
	}
	for _, u := range users {
		fmt.Printf("%d\t%s\t%s\n", u.ID, u.Username, u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func groupCommand(args []string) int {
	if len(args) < 2 {
		fmt.Println("Usage: yatube group create <slug> <title> [description] | group delete <slug>")
		return 1
	}
	switch args[0] {
	case "create":
		if len(args) < 3 {
			fmt.Println("Error: slug and title required")
			return 1
		}
		description := args[2]
		if len(args) > 3 {
			description = strings.Join(args[3:], " ")
		}
		return withServices(func(svc *services.Services) error {
			group := &models.Group{Slug: args[1], Title: args[2], Description: description}
			if err := svc.Groups.CreateGroup(group); err != nil {
				return err
			}
			fmt.Printf("Group %s created with id %d\n", group.Slug, group.ID)
			return nil
		})
	case "delete":
		return withServices(func(svc *services.Services) error {
			group, err := svc.Groups.GetBySlug(args[1])
			if err != nil {
				return notFound("group", args[1], err)
			}
			if err := svc.Groups.DeleteGroup(group.ID); err != nil {
				return err
			}
			fmt.Printf("Group %s deleted\n", group.Slug)
			return nil
		})
	}
	fmt.Printf("Unknown group command: %s\n", args[0])
	return 1
}

func postCommand(args []string) int {
	if len(args) < 2 || args[0] != "delete" {
		fmt.Println("Usage: yatube post delete <id>")
		return 1
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Printf("Error: invalid post id %q\n", args[1])
		return 1
	}
	return withServices(func(svc *services.Services) error {
		if err := svc.Posts.DeletePost(context.Background(), id); err != nil {
			return notFound("post", args[1], err)
		}
		fmt.Printf("Post %d deleted\n", id)
		return nil
	})
}

func cacheCommand(args []string) int {
	if len(args) < 1 || args[0] != "clear" {
		fmt.Println("Usage: yatube cache clear")
		return 1
	}
	pages, err := cache.New(cfg)
	if err != nil {
		fmt.Printf("Failed to open cache: %v\n", err)
		return 1
	}
	defer pages.Close()

	if err := pages.Clear(context.Background()); err != nil {
		fmt.Printf("Failed to clear cache: %v\n", err)
		return 1
	}
	fmt.Println("Cache cleared")
	return 0
}

func notFound(kind, name string, err error) error {
	if services.IsNotFound(err) {
		return errors.Errorf("%s %s not found", kind, name)
	}
	return err
}
