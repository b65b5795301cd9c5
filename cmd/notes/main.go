package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"meeting-notes/internal/apiclient"
	"meeting-notes/internal/logger"
	"meeting-notes/internal/session"
)

type apiFactory func(server string) session.API

func main() {
	// .env is optional for the CLI.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(func(server string) session.API { return apiclient.New(server, nil) })
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(newAPI apiFactory) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("notes")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "notes",
		Short:         "Summarize meeting transcripts and email the result",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("server", "http://localhost:8080", "meeting-notes server URL")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	mustBind(v, "server", root.PersistentFlags().Lookup("server"))
	mustBind(v, "log-level", root.PersistentFlags().Lookup("log-level"))

	newSession := func(cmd *cobra.Command) *session.Session {
		log := logger.NewWithWriter(cmd.ErrOrStderr(), v.GetString("log-level"))
		return session.New(newAPI(v.GetString("server")), log)
	}

	root.AddCommand(newSummarizeCmd(newSession), newSendCmd(newSession))
	return root
}

func newSummarizeCmd(newSession func(*cobra.Command) *session.Session) *cobra.Command {
	var file, text, prompt, email string
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Generate a summary from a transcript file or text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			switch {
			case file != "":
				if err := s.LoadTranscriptFile(file); err != nil {
					return report(cmd, err)
				}
			case text != "":
				s.SetTranscript(text)
			default:
				return report(cmd, errors.New("one of --file or --text is required"))
			}
			if cmd.Flags().Changed("prompt") {
				s.SetPrompt(prompt)
			}

			if err := s.GenerateSummary(cmd.Context()); err != nil {
				return report(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.State().Summary)

			if email == "" {
				return nil
			}
			s.SetEmail(email)
			if err := s.SendSummary(cmd.Context()); err != nil {
				return report(cmd, err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), session.NoticeSent)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "plain-text transcript file")
	cmd.Flags().StringVar(&text, "text", "", "transcript text")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "custom instructions for the model")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email the summary to this address")
	cmd.MarkFlagsMutuallyExclusive("file", "text")
	return cmd
}

func newSendCmd(newSession func(*cobra.Command) *session.Session) *cobra.Command {
	var email, summary, summaryFile string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Email an (edited) summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			if summaryFile != "" {
				data, err := os.ReadFile(summaryFile)
				if err != nil {
					return report(cmd, err)
				}
				summary = string(data)
			}
			s.SetSummary(summary)
			s.SetEmail(email)

			if err := s.SendSummary(cmd.Context()); err != nil {
				return report(cmd, err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), session.NoticeSent)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "recipient address")
	cmd.Flags().StringVar(&summary, "summary", "", "summary text")
	cmd.Flags().StringVar(&summaryFile, "summary-file", "", "file containing the summary")
	cmd.MarkFlagsMutuallyExclusive("summary", "summary-file")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// report prints err the way the user should see it and returns it so the
// process exits non-zero.
func report(cmd *cobra.Command, err error) error {
	var alert *session.Alert
	if errors.As(err, &alert) {
		fmt.Fprintln(cmd.ErrOrStderr(), alert.Message)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
	}
	return err
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
