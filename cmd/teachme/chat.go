package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Anaselll/TeachMeApp/pkg/client"
	"github.com/Anaselll/TeachMeApp/pkg/config"
	domainSession "github.com/Anaselll/TeachMeApp/pkg/domain/session"
	"github.com/Anaselll/TeachMeApp/pkg/infra/auth/jwt"
	infraWebsocket "github.com/Anaselll/TeachMeApp/pkg/infra/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const chatUsage = "usage: teachme chat <user_id> <student|tutor> [session_id]"

// chat runs an interactive participant against a running service. Lines
// typed on stdin are sent as messages; "/ready" signals readiness.
func chat(cfg *config.Config, logger *logrus.Logger, args []string) error {
	if len(args) < 2 {
		return errors.New(chatUsage)
	}
	self, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	role, err := domainSession.ParseRole(args[1])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, err := jwt.NewJwtManager(&cfg.Server).CreateToken(self, "")
	if err != nil {
		return err
	}
	baseURL := envOr("TEACHME_URL", fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
	wsURL := envOr("TEACHME_WS_URL", "ws"+strings.TrimPrefix(baseURL, "http")+"/ws")

	relay, err := client.DialRelay(ctx, logger, wsURL, token)
	if err != nil {
		return err
	}
	defer relay.Close()

	ctrl := client.NewController(logger, client.NewAPIClient(baseURL, token, nil), relay, self, role)
	sessions, err := ctrl.Load(ctx, domainSession.StatusScheduled)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return errors.New("no scheduled sessions")
	}
	for _, s := range sessions {
		fmt.Printf("%s  %s  ready=%t  chat=%t\n", s.ID, s.ScheduledStart.Format("2006-01-02 15:04"), ctrl.CanSignalReady(s.ID), s.ChatActive)
	}

	selected := sessions[0].ID
	if len(args) > 2 {
		if selected, err = uuid.Parse(args[2]); err != nil {
			return fmt.Errorf("invalid session id: %w", err)
		}
	}
	if err := ctrl.Select(ctx, selected); err != nil {
		return err
	}
	for _, m := range ctrl.Transcript() {
		printMessage(self, m.SenderID, m.Content)
	}
	fmt.Printf("-- %s (%s)\n", selected, ctrl.State())

	ctrl.Observe(func(env infraWebsocket.Envelope) {
		switch env.Event {
		case infraWebsocket.EventReceiveMessage:
			if transcript := ctrl.Transcript(); len(transcript) > 0 {
				last := transcript[len(transcript)-1]
				printMessage(self, last.SenderID, last.Content)
			}
		case infraWebsocket.EventSessionReady:
			fmt.Printf("-- %s\n", ctrl.State())
		}
	})
	go func() {
		if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).Warn("relay loop stopped")
		}
		stop()
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			handleChatLine(ctx, logger, ctrl, line)
		}
	}
}

func handleChatLine(ctx context.Context, logger *logrus.Logger, ctrl *client.Controller, line string) {
	if strings.TrimSpace(line) == "/ready" {
		ready, err := ctrl.SignalReady(ctx)
		if err != nil {
			logger.WithError(err).Warn("could not signal readiness")
			return
		}
		if ready {
			fmt.Println("-- chat is open")
		} else {
			fmt.Println("-- waiting for the other participant")
		}
		return
	}
	if _, err := ctrl.Send(ctx, line); err != nil {
		logger.WithError(err).Warn("message not sent")
	}
}

func printMessage(self, sender uuid.UUID, content string) {
	who := "peer"
	if sender == self {
		who = "me"
	}
	fmt.Printf("[%s] %s\n", who, content)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
