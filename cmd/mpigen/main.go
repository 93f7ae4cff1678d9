// Command mpigen exercises the mpi package end to end: it generates a
// random (optionally safe) prime of a requested bit length and, given a
// modulus and exponent, runs a modular exponentiation demo.
package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/cryptompi/mpi"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func main() {
	root := &cobra.Command{
		Use:   "mpigen",
		Short: "Generate primes and run modular exponentiation with the mpi package",
	}
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		log.SetLevel(parsed)
		return nil
	}

	root.AddCommand(genPrimeCmd())
	root.AddCommand(expModCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func genPrimeCmd() *cobra.Command {
	var bits int
	var safe bool

	cmd := &cobra.Command{
		Use:   "genprime",
		Short: "Generate a random prime of the given bit length",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			p, err := mpi.GenPrime(bits, safe, rand.Reader)
			if err != nil {
				return err
			}
			s, err := p.String16(16)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"bits":    bits,
				"safe":    safe,
				"elapsed": time.Since(start),
			}).Info("generated prime")
			fmt.Println(s)
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 2048, "bit length of the prime to generate")
	cmd.Flags().BoolVar(&safe, "safe", false, "generate a safe prime (X = 2Y+1, Y prime)")
	return cmd
}

func expModCmd() *cobra.Command {
	var base, exponent, modulus string

	cmd := &cobra.Command{
		Use:   "expmod",
		Short: "Compute base^exponent mod modulus (hex inputs)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, e, n := mpi.NewInt(), mpi.NewInt(), mpi.NewInt()
			if err := a.SetString(base, 16); err != nil {
				return err
			}
			if err := e.SetString(exponent, 16); err != nil {
				return err
			}
			if err := n.SetString(modulus, 16); err != nil {
				return err
			}

			m, err := mpi.NewModulus(n)
			if err != nil {
				return err
			}

			start := time.Now()
			x := mpi.NewInt()
			if err := m.Exp(x, a, e); err != nil {
				return err
			}
			log.WithField("elapsed", time.Since(start)).Info("computed modular exponentiation")

			s, err := x.String16(16)
			if err != nil {
				return err
			}
			fmt.Println(s)
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "base, hex")
	cmd.Flags().StringVar(&exponent, "exp", "", "exponent, hex")
	cmd.Flags().StringVar(&modulus, "mod", "", "modulus, hex (must be odd)")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("exp")
	_ = cmd.MarkFlagRequired("mod")
	return cmd
}
