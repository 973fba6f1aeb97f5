package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/f3rmion/tbls/bls12381"
	"github.com/f3rmion/tbls/internal/api"
	"github.com/f3rmion/tbls/internal/config"
	"github.com/f3rmion/tbls/internal/logger"
	"github.com/f3rmion/tbls/internal/metrics"
	"github.com/f3rmion/tbls/session"
	"github.com/f3rmion/tbls/tbls"
)

func newScheme(hasherName string) (*tbls.Scheme, error) {
	hasher, ok := tbls.HasherByName(hasherName)
	if !ok {
		return nil, fmt.Errorf("unknown hasher %q", hasherName)
	}
	return tbls.NewWithHasher(bls12381.New(), hasher)
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Generate a master key and serve the signing API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetInt("port"); port != 0 {
				cfg.ListenPort = port
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.LogSampler)

			scheme, err := newScheme(cfg.Hasher)
			if err != nil {
				return err
			}
			key, err := scheme.KeyGen(rand.Reader)
			if err != nil {
				return err
			}

			store := session.NewStore()
			m := metrics.New(store.Len)
			coord, err := session.NewCoordinator(scheme, key, store, log, session.WithRecorder(m))
			if err != nil {
				return err
			}
			defer coord.Close()

			server := api.NewServer(log, coord, api.Options{
				Port:         cfg.ListenPort,
				ReadTimeout:  cfg.ReadTimeout(),
				WriteTimeout: cfg.WriteTimeout(),
				DefaultPair:  cfg.DefaultPair(),
				Metrics:      m.Handler(),
			})
			if err := server.Start(); err != nil {
				return err
			}
			log.Info().
				Str("pk", hex.EncodeToString(coord.PublicKey())).
				Str("hasher", cfg.Hasher).
				Msg("master key ready")

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			log.Info().Msg("shutting down")
			return server.Stop()
		},
	}
	cmd.Flags().Int("port", 0, "override listen_port from the config")
	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config to <home>/config",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, _ := cmd.Flags().GetString(flagHome)
			cfg, err := config.LoadDefaultConfig()
			if err != nil {
				return err
			}
			if err := config.Save(cfg, home); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote config to %s/config\n", home)
			return nil
		},
	}
}

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a master key pair and print its public half",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			scheme, err := newScheme(cfg.Hasher)
			if err != nil {
				return err
			}
			key, err := scheme.KeyGen(rand.Reader)
			if err != nil {
				return err
			}
			defer key.Zero()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pk: %x\n", key.Public)
			fmt.Fprintf(out, "g:  %x\n", key.Generator)
			return nil
		},
	}
}

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo [message]",
		Short: "Run one threshold signing round locally and print every step",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			message := []byte("hello threshold bls")
			if len(args) == 1 {
				message = []byte(args[0])
			}
			scheme, err := newScheme(cfg.Hasher)
			if err != nil {
				return err
			}
			return runDemo(cmd, scheme, cfg.DefaultPair(), message)
		},
	}
	return cmd
}

func runDemo(cmd *cobra.Command, scheme *tbls.Scheme, ids [2]tbls.ParticipantID, message []byte) error {
	out := cmd.OutOrStdout()

	key, err := scheme.KeyGen(rand.Reader)
	if err != nil {
		return err
	}
	defer key.Zero()
	fmt.Fprintf(out, "pk:        %x\n", key.Public)

	randomness, err := scheme.Rand(rand.Reader)
	if err != nil {
		return err
	}

	var partials [2][]byte
	var remainders [2][]byte
	for i, id := range ids {
		share, err := scheme.Derive(key.Generator, randomness, id, key.Secret)
		if err != nil {
			return err
		}
		enc, err := share.PublicShare().MarshalBinary()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "share %s:   %x\n", id, enc)

		blinded, err := scheme.Blind(message, share.Secret, id, ids[1-i])
		if err != nil {
			return err
		}
		partials[i], err = scheme.SignGroup(blinded.Message, share.Secret)
		if err != nil {
			return err
		}
		remainders[i] = blinded.Remainder
		share.Zero()
		fmt.Fprintf(out, "partial %s: %x\n", id, partials[i])
	}

	sig, err := scheme.Aggregate(partials[0], partials[1])
	if err != nil {
		return err
	}
	ok, err := scheme.Verify(message, sig, key.Public, key.Generator)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "signature: %x\n", sig)
	fmt.Fprintf(out, "verified:  %t\n", ok)

	restored, err := scheme.Restore(remainders[0], remainders[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "restored:  %t\n", bytes.Equal(restored, key.Secret))
	clear(restored)
	clear(remainders[0])
	clear(remainders[1])
	return nil
}
