// A Golang RFC7049 implementation
// Copyright (C) 2015 Oscar Campos

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

// http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cbor "github.com/DamnWidget/cbornum"
	"github.com/DamnWidget/cbornum/num"
)

func main() {
	var verbose bool
	var logger *zap.Logger

	rootCmd := &cobra.Command{
		Use:   "cbornum",
		Short: "CBOR diagnostics — dump, canonicalise and evaluate numeric payloads",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging")

	var strict bool
	dumpCmd := &cobra.Command{
		Use:   "dump [hex]",
		Short: "Decode hex or stdin CBOR and print the value tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := inputBytes(args)
			if err != nil {
				return err
			}
			logger.Debug("decoding", zap.Int("bytes", len(data)), zap.Bool("strict", strict))
			opts := []func(*cbor.Decoder){}
			if strict {
				opts = append(opts, cbor.Strict)
			}
			v, err := cbor.DecodeBytes(data, opts...)
			if err != nil {
				return err
			}
			fmt.Println(render(v, 0))
			return nil
		},
	}
	dumpCmd.Flags().BoolVar(&strict, "strict", false, "reject non-canonical input")

	canonCmd := &cobra.Command{
		Use:   "canon [hex]",
		Short: "Re-encode hex or stdin CBOR canonically and print hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := inputBytes(args)
			if err != nil {
				return err
			}
			v, err := cbor.DecodeBytes(data)
			if err != nil {
				return err
			}
			out, err := cbor.EncodeCanonical(v)
			if err != nil {
				return err
			}
			logger.Debug("canonicalised", zap.Int("in", len(data)), zap.Int("out", len(out)))
			fmt.Println(hex.EncodeToString(out))
			return nil
		},
	}

	var precision int
	evalCmd := &cobra.Command{
		Use:   "eval <op> <a> [b]",
		Short: "Evaluate a decimal operation (add, sub, mul, div, pow, sqrt, exp, ln)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := num.NewPrecisionContext(precision).WithBlankFlags()
			result, err := evalDecimal(args, ctx)
			if err != nil {
				return err
			}
			logger.Debug("evaluated",
				zap.String("op", args[0]),
				zap.Int("flags", ctx.Flags()))
			fmt.Println(result)
			return nil
		},
	}
	evalCmd.Flags().IntVarP(&precision, "precision", "p", 34, "working precision in digits")

	rootCmd.AddCommand(dumpCmd, canonCmd, evalCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// inputBytes takes the hex argument, or reads raw CBOR from stdin
func inputBytes(args []string) ([]byte, error) {
	if len(args) > 0 {
		return hex.DecodeString(strings.ReplaceAll(args[0], " ", ""))
	}
	return io.ReadAll(os.Stdin)
}

func evalDecimal(args []string, ctx *num.PrecisionContext) (*num.ExtendedDecimal, error) {
	a, err := num.ExtendedDecimalFromString(args[1])
	if err != nil {
		return nil, err
	}
	var b *num.ExtendedDecimal
	if len(args) > 2 {
		b, err = num.ExtendedDecimalFromString(args[2])
		if err != nil {
			return nil, err
		}
	}
	binary := func(f func(*num.ExtendedDecimal, *num.PrecisionContext) *num.ExtendedDecimal) (*num.ExtendedDecimal, error) {
		if b == nil {
			return nil, fmt.Errorf("operation %q needs two operands", args[0])
		}
		return f(b, ctx), nil
	}
	switch args[0] {
	case "add":
		return binary(a.Add)
	case "sub":
		return binary(a.Subtract)
	case "mul":
		return binary(a.Multiply)
	case "div":
		return binary(a.Divide)
	case "pow":
		return binary(a.Power)
	case "sqrt":
		return a.SquareRoot(ctx), nil
	case "exp":
		return a.Exp(ctx), nil
	case "ln":
		return a.Ln(ctx), nil
	default:
		return nil, fmt.Errorf("unknown operation %q", args[0])
	}
}

// render prints a value tree with two-space indentation
func render(v cbor.Value, depth int) string {
	pad := strings.Repeat("  ", depth)
	switch t := v.(type) {
	case cbor.Array:
		var sb bytes.Buffer
		fmt.Fprintf(&sb, "%sarray(%d)", pad, len(t))
		for _, item := range t {
			sb.WriteByte('\n')
			sb.WriteString(render(item, depth+1))
		}
		return sb.String()
	case cbor.Map:
		var sb bytes.Buffer
		fmt.Fprintf(&sb, "%smap(%d)", pad, len(t))
		for _, p := range t {
			sb.WriteByte('\n')
			sb.WriteString(render(p.Key, depth+1))
			sb.WriteByte('\n')
			sb.WriteString(render(p.Value, depth+2))
		}
		return sb.String()
	case cbor.Tagged:
		return fmt.Sprintf("%stag(%d)\n%s", pad, t.Number, render(t.Inner, depth+1))
	case cbor.NegInt:
		return fmt.Sprintf("%s%s", pad, num.NewBigIntFromUint64(uint64(t)).Add(num.NewBigInt(1)).Neg())
	case cbor.Bytes:
		return fmt.Sprintf("%sh'%s'", pad, hex.EncodeToString(t))
	case cbor.Text:
		return fmt.Sprintf("%s%q", pad, string(t))
	case cbor.BigNum:
		return fmt.Sprintf("%sbignum(%s)", pad, t.Value)
	case cbor.Decimal:
		return fmt.Sprintf("%sdecimal(%s)", pad, t.Value)
	case cbor.BigFloat:
		return fmt.Sprintf("%sbigfloat(%s)", pad, t.Value)
	case cbor.Rational:
		return fmt.Sprintf("%srational(%s)", pad, t.Value)
	case cbor.Invalid:
		return fmt.Sprintf("%sinvalid tag(%d): %s", pad, t.Tag, t.Reason)
	default:
		return fmt.Sprintf("%s%v", pad, v)
	}
}
