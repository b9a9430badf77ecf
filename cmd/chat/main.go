// Command chat is a terminal client for the emotion-analysis chat backend.
// It registers or logs in a nickname, keeps the session across runs, and
// annotates every sent message with the backend's sentiment verdict.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/emotion-chat/internal/config"
	"github.com/zhouzirui/emotion-chat/internal/model/user"
	"github.com/zhouzirui/emotion-chat/internal/service/backend"
	"github.com/zhouzirui/emotion-chat/internal/session"
	"github.com/zhouzirui/emotion-chat/internal/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			log.Fatalf("cannot resolve session path: %v", err)
		}
	}

	sessions := session.NewStore(sessionPath)
	client := backend.New(cfg.APIBaseURL, cfg.HTTPTimeout, cfg.AnalyzeTimeout)

	app := view.NewApp(client, sessions)
	app.Init()

	if err := run(ctx, cfg, app, client, sessions); err != nil {
		log.Fatalf("chat client error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, app *view.App, client *backend.Client, sessions *session.Store) error {
	scanner := bufio.NewScanner(os.Stdin)

	for ctx.Err() == nil {
		u, ok := app.CurrentUser()
		if !ok {
			newUser, ok := runLogin(ctx, scanner, client, sessions, cfg)
			if !ok {
				return nil
			}
			app.HandleLogin(newUser)
			continue
		}

		if quit := runChat(ctx, scanner, app, client, u); quit {
			return nil
		}
	}
	return nil
}

// runLogin drives the nickname form. Typing a line sets the nickname (and in
// register mode arms the debounced availability check); an empty line submits
// it. Returns false when the user quits instead of logging in.
func runLogin(ctx context.Context, scanner *bufio.Scanner, client *backend.Client, sessions *session.Store, cfg *config.Config) (user.User, bool) {
	login := view.NewLogin(client, sessions, cfg.AvailabilityDebounce)
	login.SetAvailabilityListener(func(result backend.Availability) {
		marker := "✔"
		if !result.Available {
			marker = "✘"
		}
		fmt.Printf("\n%s %s\n", marker, result.Message)
		printLoginPrompt(login)
	})

	fmt.Println("emotion chat — type a nickname, press enter again to submit")
	fmt.Println("commands: /register  /login  /quit")
	printLoginPrompt(login)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return user.User{}, false
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "/quit":
			return user.User{}, false
		case "/register":
			if !login.Registering() {
				login.ToggleMode()
			}
		case "/login":
			if login.Registering() {
				login.ToggleMode()
			}
		case "":
			u, ok := login.Submit(ctx)
			if ok {
				fmt.Printf("welcome, %s!\n", u.Nickname)
				return u, true
			}
			if msg := login.Err(); msg != "" {
				fmt.Println(msg)
			}
		default:
			login.SetNickname(line)
		}
		printLoginPrompt(login)
	}
	return user.User{}, false
}

func printLoginPrompt(login *view.Login) {
	mode := "login"
	if login.Registering() {
		mode = "register"
	}
	if login.Checking() {
		fmt.Println("checking availability...")
	}
	fmt.Printf("%s nickname> ", mode)
}

// runChat drives the message loop for a logged-in user. Returns true to quit
// the program, false after a logout to fall back to the login form.
func runChat(ctx context.Context, scanner *bufio.Scanner, app *view.App, client *backend.Client, u user.User) bool {
	chatView := view.NewChat(client)

	fmt.Printf("\nemotion chat — %s\n", u.Nickname)
	fmt.Println("commands: /retry  /users  /whoami  /logout  /quit")
	printStatus(chatView.CheckConnection(ctx))
	fmt.Println(view.RenderMessages(chatView.Messages()))

	for {
		fmt.Print("> ")
		if !scanner.Scan() || ctx.Err() != nil {
			return true
		}
		line := scanner.Text()

		switch strings.TrimSpace(line) {
		case "":
			continue
		case "/quit":
			return true
		case "/logout":
			app.Logout()
			fmt.Println("logged out")
			return false
		case "/retry":
			printStatus(chatView.CheckConnection(ctx))
		case "/whoami":
			me, err := client.GetUser(ctx, u.ID)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("#%d %s (registered %s)\n", me.ID, me.Nickname, me.CreatedAt)
		case "/users":
			users, err := client.GetAllUsers(ctx)
			if err != nil {
				fmt.Println(err)
				continue
			}
			for _, item := range users {
				fmt.Printf("#%d %s\n", item.ID, item.Nickname)
			}
		default:
			sendMessage(ctx, chatView, line)
		}
	}
}

func sendMessage(ctx context.Context, chatView *view.Chat, text string) {
	msg, done, err := chatView.Send(ctx, text)
	if err != nil {
		switch {
		case errors.Is(err, view.ErrDisconnected):
			fmt.Println("backend is unreachable — try /retry")
		case errors.Is(err, view.ErrAnalysisInFlight):
			fmt.Println("hold on, the previous message is still being analyzed")
		}
		return
	}

	fmt.Println(view.RenderEmotion(nil, true))
	select {
	case <-done:
	case <-ctx.Done():
		return
	}

	for _, m := range chatView.Messages() {
		if m.ID == msg.ID {
			fmt.Println(view.RenderMessage(m))
			break
		}
	}
	fmt.Println(view.RenderEmotion(chatView.Current(), false))
}

func printStatus(status view.Status) {
	switch status {
	case view.StatusConnected:
		fmt.Println("status: connected")
	case view.StatusDisconnected:
		fmt.Println("status: disconnected — messages are disabled until /retry succeeds")
	default:
		fmt.Println("status: checking...")
	}
}
