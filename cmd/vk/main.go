// Copyright 2026 The VariantKey Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command vk encodes and decodes VariantKey, RegionKey, and ESID values
// from the command line.
//
// Run with no subcommand for the bare VariantKey contract:
//
//	vk CHROM POS REF ALT
//
// which prints 16 lowercase hex digits and exits 0, or prints a usage
// message to stderr and exits 1 if it did not receive exactly four
// arguments. The region, esid, and checksum subcommands extend this with
// RegionKey encoding, ESID encoding, and a lookup-table fingerprint check.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/cmdutil"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"

	"github.com/nasuni-labs/variantkey/esid"
	"github.com/nasuni-labs/variantkey/lookup"
	"github.com/nasuni-labs/variantkey/regionkey"
	"github.com/nasuni-labs/variantkey/variantkey"
)

func main() {
	// The bare-contract form (vk CHROM POS REF ALT) is checked before handing
	// control to cmdline, since that contract's exit codes and output format
	// (16 hex digits, nothing else) must not be altered by the flag/help
	// machinery cmdline wraps every subcommand in. Any invocation whose first
	// argument is not a subcommand, "help", or a flag takes this path, so a
	// wrong argument count also gets runEncode's usage message and exit 1.
	if len(os.Args) < 2 || (!childNames[os.Args[1]] && os.Args[1] != "help" && !strings.HasPrefix(os.Args[1], "-")) {
		os.Exit(runEncode(os.Args[1:]))
	}
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(root())
}

var childNames = map[string]bool{
	"region":   true,
	"esid":     true,
	"checksum": true,
}

func runEncode(argv []string) int {
	if len(argv) != 4 {
		fmt.Fprintln(os.Stderr, "usage: vk CHROM POS REF ALT")
		return 1
	}
	pos, err := strconv.ParseUint(argv[1], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vk: invalid position %q: %v\n", argv[1], err)
		return 1
	}
	vk := variantkey.Encode(argv[0], uint32(pos), argv[2], argv[3])
	fmt.Println(variantkey.Hex(vk))
	return 0
}

// root is only reached once main has already ruled out the bare
// CHROM POS REF ALT contract, so it needs no Runner of its own: every
// invocation that gets here names one of the subcommands below, "help", or
// a flag.
func root() *cmdline.Command {
	return &cmdline.Command{
		Name:  "vk",
		Short: "Encode and decode VariantKey, RegionKey, and ESID values",
		Children: []*cmdline.Command{
			newRegionCmd(),
			newEsidCmd(),
			newChecksumCmd(),
		},
	}
}

func newRegionCmd() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "region",
		Short:    "Encode a RegionKey",
		ArgsName: "chrom start end [strand]",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 && len(argv) != 4 {
			return errors.New("region takes chrom start end [strand]")
		}
		start, err := strconv.ParseUint(argv[1], 10, 32)
		if err != nil {
			return errors.Wrap(err, "invalid start")
		}
		end, err := strconv.ParseUint(argv[2], 10, 32)
		if err != nil {
			return errors.Wrap(err, "invalid end")
		}
		var strand byte
		if len(argv) == 4 && len(argv[3]) > 0 {
			strand = argv[3][0]
		}
		rk := regionkey.Encode(argv[0], uint32(start), uint32(end), strand)
		fmt.Println(regionkey.Hex(rk))
		return nil
	})
	return cmd
}

func newEsidCmd() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "esid",
		Short:    "Encode a compact string identifier",
		ArgsName: "string",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return errors.New("esid takes exactly one string argument")
		}
		fmt.Printf("%016x\n", esid.Encode(argv[0], ':'))
		return nil
	})
	return cmd
}

func newChecksumCmd() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "checksum",
		Short:    "Print a fingerprint of a rsvk/vkrs/nrvk lookup table installation",
		ArgsName: "rsvk.bin vkrs.bin nrvk.bin",
	}
	algo := cmd.Flags.String("algo", "farm", "hash algorithm: farm or seahash")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 3 {
			return errors.New("checksum takes rsvk.bin vkrs.bin nrvk.bin")
		}
		rv, err := lookup.LoadRsidVariantKeyTable(argv[0])
		if err != nil {
			return err
		}
		defer rv.Close()
		vr, err := lookup.LoadVariantKeyRsidTable(argv[1])
		if err != nil {
			return err
		}
		defer vr.Close()
		nr, err := lookup.LoadNonReversibleTable(argv[2])
		if err != nil {
			return err
		}
		defer nr.Close()
		tables := &lookup.Tables{RsidVk: rv, VkRsid: vr, NonRevk: nr}
		switch *algo {
		case "farm":
			fmt.Printf("%016x\n", tables.Fingerprint())
		case "seahash":
			fmt.Printf("%016x\n", tables.FingerprintWith(seahash.New()))
		default:
			return errors.Errorf("checksum: unknown -algo %q, want farm or seahash", *algo)
		}
		return nil
	})
	return cmd
}
