package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/treespan/cmd"
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/miners"
	"github.com/timtadh/treespan/miners/dfs"
	"github.com/timtadh/treespan/miners/vsigram"
)

func init() {
	cmd.UsageMessage = "treespan --help"
	cmd.ExtendedMessage = `
treespan - mine frequent induced subtrees by pattern growth

$ treespan -o <path> (--support=<int> | --fraction=<float>) [Global Options] \
    <type> [Type Options] <input-path> \
    <mode> [Mode Options] \
    [<reporter> [Reporter Options]]

Note: You must supply [Global Options] then [<type> [Type Options]] then
      [<mode> [Mode Options]] and finally <input-path>. Changes in ordering are
      not supported.

Note: You may either supply the <input-path> as a regular file, a gzipped
      file or a directory of files. If supplying a gzip file the file extension
      must be '.gz'.

Note: If you don't supply a reporter by default it will use
      'chain log file count'.


Global Options
    -h, --help                view this message
    --types                   show the available types
    --modes                   show the available modes
    --reporters               show the available reporters
    -o, --output=<path>       path to output directory (required)
                              NB: will overwrite contents of dir
    --support=<int>           minimum support of patterns
    --fraction=<float>        minimum support as a fraction of the number of
                              trees. May be given several times to mine at
                              each threshold, each run writes to
                              <output>/fraction-<float>
    --rounding=<policy>       how a fraction becomes a count: floor (default),
                              ceil, round
    -p, --parallelism=<int>   workers for the vsigram mode (-1 = #cpus)
    --timeout=<duration>      stop growing patterns after this long (eg. 10m).
                              patterns reported so far are kept.
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

Types
    tree                      labeled ordered rooted trees

    tree Example
        $ treespan -o /tmp/treespan --fraction=.01 \
            tree ./data/D10.data \
            dfs

    tree Options
        -h, help                 view this message
        -l, loader=<loader-name> the loader to use (default int)
        -c, counting=<mode>      occurrence (default): every occurrence of a
                                 pattern counts toward its support.
                                 transaction: each tree counts once.
        --min-size=<int>         smallest pattern (in nodes) to report
        --max-size=<int>         largest pattern (in nodes) to grow
        --skip-malformed         log and skip unbalanced records instead of
                                 failing

    tree Loaders
       int                         each line is a tree
                                   the tokens are integers, space separated
                                   a label opens a node, -1 closes the most
                                   recently opened node (preorder)

       int Example file:
            1 2 -1 3 -1 -1
            1 2 4 -1 -1 -1
            # comment lines and blank lines are skipped

Modes
    dfs                       recursive depth first pattern growth. Reports
                              patterns in a reproducible order.
    vsigram                   parallel pattern growth over a shared work stack.
                              Reports the same patterns as dfs in an
                              unspecified order.

Reporters
    chain                     chain several reporters together (end the chain
                              with endchain)
    log                       log the patterns
    file                      write the patterns to a file in the output dir
    dir                       write patterns to a nested dir format
    count                     write the number of patterns (and a histogram of
                              their sizes) to a file in the output dir
    sqlite                    write patterns and embeddings to a sqlite db
    unique                    takes an "inner reporter" but only passes the
                              unique patterns to the inner reporter
    skip                      takes an "inner reporter" and passes it every
                              n-th pattern
    max                       takes an "inner reporter" and passes it the
                              patterns with no frequent growth
    heap-profile              write heap profiles while mining

    log Options
        -l, level=<string>    log level the logger should use
        -p, prefix=<string>   a prefix to put before the log line

    file Options
        -e, embeddings=<name>  the prefix of the name of the file in the output
                               directory to write the embeddings
        -p, patterns=<name>    the prefix of the name of the file in the output
                               directory to write the patterns

    dir Options
        -d, dir-name=<name>   name of the directory.

    count Options
        -f, filename=<name>   name of the file (default count)

    sqlite Options
        -f, filename=<name>   name of the database (default patterns.sqlite)
        --no-embeddings       only store the patterns

    skip Options
        -n, every=<int>       pass every n-th pattern (default 1)

    heap-profile Options
        -p, profile=<path>    where you want the heap-profiles written
        -e, every=<int>       profile every n patterns (default 1)
        -a, after=<int>       profile after n patterns (default 0)

    Examples

        $ treespan -o <path> --support=5 \
            tree ./trees.data \
            dfs \
            chain log file

        $ treespan -o <path> --fraction=.01 --fraction=.008 --fraction=.006 \
            tree --counting=transaction ./trees.data.gz \
            vsigram \
            chain count sqlite endchain
`
}

func vsigramMode(argv []string, conf *config.Config) (miners.Miner, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return vsigram.NewMiner(conf), args
}

func dfsMode(argv []string, conf *config.Config) (miners.Miner, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return dfs.NewMiner(conf), args
}

func main() {
	os.Exit(run())
}

func run() int {
	modes := map[string]cmd.Mode{
		"dfs":     dfsMode,
		"vsigram": vsigramMode,
	}

	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:p:",
		[]string{
			"help",
			"output=",
			"support=", "fraction=", "rounding=",
			"modes", "types", "reporters",
			"parallelism=",
			"timeout=",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "could not process your arguments (perhaps you forgot a mode?) try:")
		fmt.Fprintf(os.Stderr, "$ %v tree <input> dfs %v\n", os.Args[0], strings.Join(os.Args[1:], " "))
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	conf := &config.Config{
		Parallelism: -1,
	}
	output := ""
	fractions := make([]float64, 0, 5)
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-o", "--output":
			output = cmd.EmptyDir(oa.Arg())
		case "--support":
			conf.Support = cmd.ParseInt(oa.Arg())
		case "--fraction":
			fractions = append(fractions, cmd.ParseFloat(oa.Arg()))
		case "--rounding":
			conf.Rounding = oa.Arg()
		case "-p", "--parallelism":
			conf.Parallelism = cmd.ParseInt(oa.Arg())
		case "--timeout":
			conf.Timeout = cmd.ParseDuration(oa.Arg())
		case "--types":
			fmt.Fprintln(os.Stderr, "Types:")
			for k := range cmd.Types {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--modes":
			fmt.Fprintln(os.Stderr, "Modes:")
			for k := range modes {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--reporters":
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range cmd.Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if conf.Support < 0 {
		fmt.Fprintf(os.Stderr, "Support < 0, must be > 0\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if conf.Parallelism < -1 {
		fmt.Fprintf(os.Stderr, "Parallelism < -1, use -1 for one worker per cpu\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if conf.Support == 0 && len(fractions) == 0 {
		fmt.Fprintf(os.Stderr, "You must supply --support or --fraction\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if conf.Support > 0 && len(fractions) > 0 {
		errors.Logf("WARN", "--support=%d given, ignoring --fraction", conf.Support)
		fractions = fractions[:0]
	}

	if output == "" {
		fmt.Fprintf(os.Stderr, "You must supply an output dir (-o)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	conf.Output = output

	if cpuProfile != "" {
		defer cmd.CPUProfile(cpuProfile)()
	}

	if len(fractions) <= 1 {
		if len(fractions) == 1 {
			conf.Fraction = fractions[0]
		}
		return cmd.Main(args, conf, modes)
	}

	code := 0
	for _, f := range fractions {
		c := conf.Copy()
		c.Fraction = f
		c.Output = cmd.EmptyDir(filepath.Join(output, fmt.Sprintf("fraction-%g", f)))
		errors.Logf("INFO", "mining at support fraction %g into %v", f, c.Output)
		code += cmd.Main(args, c, modes)
	}
	return code
}
