package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/faideww/fish-of-the-day/internal/bot"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:           "fotdbot",
		Short:         "Fish of the Day chat bot backed by FishBase",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			a, err = newApp(cfg, newLogger(cfg.LogLevel))
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Connect to Discord and answer commands",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runBot(cmd.Context(), a)
			},
		},
		&cobra.Command{
			Use:   "fish",
			Short: "Print a random suitable fish",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printReply(cmd.OutOrStdout(), a.responder.Respond(cmd.Context(), bot.CommandFish, ""))
			},
		},
		&cobra.Command{
			Use:   "fotd",
			Short: "Print the current Fish of the Day, picking a new one if needed",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printReply(cmd.OutOrStdout(), a.responder.Respond(cmd.Context(), bot.CommandFotd, ""))
			},
		},
		newHistoryCmd(func() *app { return a }),
	)

	return root
}

func newHistoryCmd(getApp func() *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous Fish of the Day picks (sqlite store only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := getApp()
			if a.sqlite == nil {
				return errors.New("history needs FOTD_STORE=sqlite")
			}
			entries, err := a.sqlite.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No Fish of the Day picked yet.")
				return nil
			}
			for _, e := range entries {
				line := fmt.Sprintf("%s  %s", e.FormattedDate(), e.Fish.ScientificName)
				if e.Fish.HasCommonName() {
					line += fmt.Sprintf(" (%s)", e.Fish.CommonName)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of days to list")
	return cmd
}

func printReply(w io.Writer, reply bot.Reply) error {
	switch r := reply.(type) {
	case bot.TextReply:
		_, err := fmt.Fprintln(w, r.Text)
		return err
	case bot.MediaReply:
		_, err := fmt.Fprintf(w, "%s\n%s\n", r.Text, r.ImageURL)
		return err
	default:
		return nil
	}
}

func runBot(ctx context.Context, a *app) error {
	if a.cfg.DiscordToken == "" {
		return ErrNoToken
	}

	session, err := discordgo.New("Bot " + a.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	teardown := bot.Setup(session, bot.NewHandler(a.responder, a.client, a.logger))
	defer teardown()

	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		a.logger.Info("bot is running", "user", r.User.Username)
		if !a.cfg.PrimeFotd {
			return
		}
		if err := a.cache.Prime(ctx); err != nil {
			a.logger.Error("fish of the day couldn't be set at startup", "err", err)
		}
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open session connection: %w", err)
	}
	defer session.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	a.logger.Info("shutting down")
	return nil
}
