package cmd

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
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"path"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/treespan/config"
	"github.com/timtadh/treespan/lattice"
	"github.com/timtadh/treespan/miners"
	"github.com/timtadh/treespan/miners/reporters"
	"github.com/timtadh/treespan/stats"
	"github.com/timtadh/treespan/types/tree"
)

func init() {
	runtime.GOMAXPROCS(runtime.NumCPU())
}

var ErrorCodes map[string]int = map[string]int{
	"usage":    0,
	"version":  2,
	"opts":     3,
	"badint":   5,
	"badfloat": 6,
	"baddir":   6,
	"badfile":  7,
}

var UsageMessage string
var ExtendedMessage string

func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	os.Exit(code)
}

func Input(input_path string) (reader io.Reader, closeall func()) {
	stat, err := os.Stat(input_path)
	if err != nil {
		panic(err)
	}
	if stat.IsDir() {
		return InputDir(input_path)
	} else {
		return InputFile(input_path)
	}
}

func InputFile(input_path string) (reader io.Reader, closeall func()) {
	freader, err := os.Open(input_path)
	if err != nil {
		panic(err)
	}
	if strings.HasSuffix(input_path, ".gz") {
		greader, err := gzip.NewReader(freader)
		if err != nil {
			panic(err)
		}
		return greader, func() {
			greader.Close()
			freader.Close()
		}
	}
	return freader, func() {
		freader.Close()
	}
}

// InputDir concatenates every regular file in the directory in name order.
func InputDir(input_dir string) (reader io.Reader, closeall func()) {
	var readers []io.Reader
	var closers []func()
	dir, err := os.ReadDir(input_dir)
	if err != nil {
		panic(err)
	}
	for _, info := range dir {
		if info.IsDir() {
			continue
		}
		creader, closer := InputFile(path.Join(input_dir, info.Name()))
		// files may not end in a newline
		readers = append(readers, creader, strings.NewReader("\n"))
		closers = append(closers, closer)
	}
	reader = io.MultiReader(readers...)
	return reader, func() {
		for _, closer := range closers {
			closer()
		}
	}
}

func ParseInt(str string) int {
	i, err := strconv.Atoi(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected an int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

func ParseFloat(str string) float64 {
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a float\n", str)
		Usage(ErrorCodes["badfloat"])
	}
	return f
}

func ParseDuration(str string) time.Duration {
	d, err := time.ParseDuration(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a duration (eg. 90s, 5m)\n", str)
		Usage(ErrorCodes["opts"])
	}
	return d
}

func EmptyDir(dir string) string {
	dir = path.Clean(dir)
	_, err := os.Stat(dir)
	if err != nil && os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0775)
		if err != nil {
			log.Fatal(err)
		}
	} else if err != nil {
		log.Fatal(err)
	} else {
		// something already exists lets delete it
		err := os.RemoveAll(dir)
		if err != nil {
			log.Fatal(err)
		}
		err = os.MkdirAll(dir, 0775)
		if err != nil {
			log.Fatal(err)
		}
	}
	return dir
}

func AssertFileOrDirExists(fname string) string {
	fname = path.Clean(fname)
	_, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "File '%s' does not exist!\n", fname)
		Usage(ErrorCodes["badfile"])
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

func AssertFile(fname string) string {
	fname = path.Clean(fname)
	fi, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		return fname
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["badfile"])
	} else if fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was a directory, %s\n", fname)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

// CPUProfile starts a cpu profile and returns the function stopping it.
func CPUProfile(output string) func() {
	errors.Logf("DEBUG", "starting cpu profile: %v", output)
	f, err := os.Create(output)
	if err != nil {
		log.Fatal(err)
	}
	err = pprof.StartCPUProfile(f)
	if err != nil {
		log.Fatal(err)
	}
	return func() {
		errors.Logf("DEBUG", "closing cpu profile")
		pprof.StopCPUProfile()
		err := f.Close()
		errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
	}
}

type Type func([]string, *config.Config) (lattice.Loader, func(lattice.DataType) lattice.Formatter, []string)

func treeType(argv []string, conf *config.Config) (lattice.Loader, func(lattice.DataType) lattice.Formatter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hl:c:",
		[]string{
			"help",
			"loader=",
			"counting=",
			"min-size=",
			"max-size=",
			"skip-malformed",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}

	loaderType := "int"
	tc := &tree.Config{
		Counting: tree.Occurrences,
		MinSize:  1,
		MaxSize:  int(math.MaxInt32),
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-l", "--loader":
			loaderType = oa.Arg()
		case "-c", "--counting":
			tc.Counting, err = tree.ParseCounting(oa.Arg())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				Usage(ErrorCodes["opts"])
			}
		case "--min-size":
			tc.MinSize = ParseInt(oa.Arg())
		case "--max-size":
			tc.MaxSize = ParseInt(oa.Arg())
		case "--skip-malformed":
			tc.SkipMalformed = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}

	var loader lattice.Loader
	switch loaderType {
	case "int":
		loader, err = tree.NewIntLoader(conf, tc)
	default:
		fmt.Fprintf(os.Stderr, "Unknown tree loader '%v'\n", loaderType)
		Usage(ErrorCodes["opts"])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	errors.Logf("DEBUG", "tree counting %v sizes [%d, %d]", tc.Counting, tc.MinSize, tc.MaxSize)
	fmtr := func(_ lattice.DataType) lattice.Formatter {
		return tree.Formatter{}
	}
	return loader, fmtr, args
}

type Reporter func(map[string]Reporter, []string, lattice.Formatter, *config.Config) (miners.Reporter, []string)

// reporterOpts parses the options of one reporter. -h shows the usage, set
// receives every other option and returns false for a flag it does not know.
func reporterOpts(argv []string, short string, long []string, set func(opt, arg string) bool) []string {
	args, optargs, err := getopt.GetOpt(argv, "h"+short, append([]string{"help"}, long...))
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		default:
			if set == nil || !set(oa.Opt(), oa.Arg()) {
				errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
				Usage(ErrorCodes["opts"])
			}
		}
	}
	return args
}

func logReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	level := "INFO"
	prefix := ""
	args := reporterOpts(argv, "l:p:", []string{"level=", "prefix="}, func(opt, arg string) bool {
		switch opt {
		case "-l", "--level":
			level = arg
		case "-p", "--prefix":
			prefix = arg
		default:
			return false
		}
		return true
	})
	return reporters.NewLog(fmtr, level, prefix), args
}

func fileReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	patterns := "patterns"
	embeddings := "embeddings"
	args := reporterOpts(argv, "p:e:", []string{"patterns=", "embeddings="}, func(opt, arg string) bool {
		switch opt {
		case "-p", "--patterns":
			patterns = arg
		case "-e", "--embeddings":
			embeddings = arg
		default:
			return false
		}
		return true
	})
	fr, err := reporters.NewFile(conf, fmtr, patterns, embeddings)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files")
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return fr, args
}

func dirReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	dir := "patterns"
	args := reporterOpts(argv, "d:", []string{"dir-name="}, func(opt, arg string) bool {
		if opt != "-d" && opt != "--dir-name" {
			return false
		}
		dir = arg
		return true
	})
	dr, err := reporters.NewDir(conf, fmtr, dir)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files")
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return dr, args
}

func countReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	filename := "count"
	args := reporterOpts(argv, "f:", []string{"filename="}, func(opt, arg string) bool {
		if opt != "-f" && opt != "--filename" {
			return false
		}
		filename = arg
		return true
	})
	r, err := reporters.NewCount(conf, filename)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return r, args
}

func sqliteReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	filename := "patterns.sqlite"
	embeddings := true
	args := reporterOpts(argv, "f:", []string{"filename=", "no-embeddings"}, func(opt, arg string) bool {
		switch opt {
		case "-f", "--filename":
			filename = arg
		case "--no-embeddings":
			embeddings = false
		default:
			return false
		}
		return true
	})
	r, err := reporters.NewSQLite(conf, fmtr, filename, embeddings)
	if err != nil {
		errors.Logf("ERROR", "There was error creating the sqlite database")
		errors.Logf("ERROR", "%v", err)
		os.Exit(1)
	}
	return r, args
}

func chainReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	args := reporterOpts(argv, "", nil, nil)
	rptrs := make([]miners.Reporter, 0, 10)
	for len(args) >= 1 {
		if args[0] == "endchain" {
			args = args[1:]
			break
		}
		if _, has := reports[args[0]]; !has {
			errors.Logf("ERROR", "Unknown reporter '%v'", args[0])
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range reports {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			Usage(ErrorCodes["opts"])
		}
		var rptr miners.Reporter
		rptr, args = reports[args[0]](reports, args[1:], fmtr, conf)
		rptrs = append(rptrs, rptr)
	}
	if len(rptrs) == 0 {
		errors.Logf("ERROR", "Empty chain")
		fmt.Fprintln(os.Stderr, "try: chain log file")
		Usage(ErrorCodes["opts"])
	}
	return &reporters.Chain{Reporters: rptrs}, args
}

// innerReporter builds the reporter wrapped by unique, skip and max.
func innerReporter(name string, reports map[string]Reporter, args []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	if len(args) == 0 {
		errors.Logf("ERROR", "You must supply an inner reporter to %v", name)
		fmt.Fprintf(os.Stderr, "try: %v file\n", name)
		Usage(ErrorCodes["opts"])
	} else if _, has := reports[args[0]]; !has {
		errors.Logf("ERROR", "Unknown reporter '%v'", args[0])
		fmt.Fprintln(os.Stderr, "Reporters:")
		for k := range reports {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	}
	return reports[args[0]](reports, args[1:], fmtr, conf)
}

func uniqueReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	rptr, args := innerReporter("unique", reports, reporterOpts(argv, "", nil, nil), fmtr, conf)
	return reporters.NewUnique(rptr), args
}

func maxReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	rptr, args := innerReporter("max", reports, reporterOpts(argv, "", nil, nil), fmtr, conf)
	return reporters.NewMax(rptr), args
}

func skipReporter(reports map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	every := 1
	args := reporterOpts(argv, "n:", []string{"every="}, func(opt, arg string) bool {
		if opt != "-n" && opt != "--every" {
			return false
		}
		every = ParseInt(arg)
		return true
	})
	rptr, args := innerReporter("skip", reports, args, fmtr, conf)
	return reporters.NewSkip(every, rptr), args
}

func heapProfileReporter(rptrs map[string]Reporter, argv []string, fmtr lattice.Formatter, conf *config.Config) (miners.Reporter, []string) {
	after := 0
	every := 1
	profile := ""
	args := reporterOpts(argv, "p:a:e:", []string{"profile=", "after=", "every="}, func(opt, arg string) bool {
		switch opt {
		case "-p", "--profile":
			profile = arg
		case "-a", "--after":
			after = ParseInt(arg)
		case "-e", "--every":
			every = ParseInt(arg)
		default:
			return false
		}
		return true
	})
	if profile == "" {
		fmt.Fprintf(os.Stderr, "You must supply a location to write the profile (-p) in heap-profile.\n")
		os.Exit(1)
	}
	r, err := reporters.NewHeapProfile(profile, after, every)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error creating output files\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	return r, args
}

var Types map[string]Type = map[string]Type{
	"tree": treeType,
}

var Reporters map[string]Reporter = map[string]Reporter{
	"log":          logReporter,
	"file":         fileReporter,
	"dir":          dirReporter,
	"count":        countReporter,
	"sqlite":       sqliteReporter,
	"chain":        chainReporter,
	"unique":       uniqueReporter,
	"skip":         skipReporter,
	"max":          maxReporter,
	"heap-profile": heapProfileReporter,
}

type Mode func(argv []string, conf *config.Config) (miners.Miner, []string)

// MinSupport resolves the absolute support threshold once the database size
// is known. An absolute --support wins over --fraction.
func MinSupport(conf *config.Config, dt lattice.DataType) error {
	if conf.Support > 0 {
		return nil
	}
	sup, err := stats.MinSupport(dt.Size(), conf.Fraction, conf.Rounding)
	if err != nil {
		return err
	}
	conf.Support = sup
	return nil
}

func Main(args []string, conf *config.Config, modes map[string]Mode) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply a type and a mode\n")
		Usage(ErrorCodes["opts"])
	} else if _, has := Types[args[0]]; !has {
		fmt.Fprintf(os.Stderr, "Unknown data type '%v'\n", args[0])
		fmt.Fprintln(os.Stderr, "Types:")
		for k := range Types {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	}
	loader, makeFmtr, args := Types[args[0]](args[1:], conf)

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly an input path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		Usage(ErrorCodes["opts"])
	}
	inputPath := AssertFileOrDirExists(args[0])
	args = args[1:]

	getInput := func() (io.Reader, func()) {
		return Input(inputPath)
	}

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply a mode\n")
		Usage(ErrorCodes["opts"])
	} else if _, has := modes[args[0]]; !has {
		fmt.Fprintf(os.Stderr, "Unknown mining mode '%v'\n", args[0])
		fmt.Fprintln(os.Stderr, "Modes:")
		for k := range modes {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	}
	mode, args := modes[args[0]](args[1:], conf)

	errors.Logf("INFO", "Got configuration about to load dataset")
	dt, err := loader.Load(getInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the loading process\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := MinSupport(conf, dt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	errors.Logf("INFO", "database size: %d, min support: %d", dt.Size(), conf.Support)
	fmtr := makeFmtr(dt)

	var rptr miners.Reporter
	if len(args) == 0 {
		rptr, _ = Reporters["chain"](Reporters, []string{"log", "file", "count"}, fmtr, conf)
	} else if _, has := Reporters[args[0]]; !has {
		fmt.Fprintf(os.Stderr, "Unknown reporter '%v'\n", args[0])
		fmt.Fprintln(os.Stderr, "Reporters:")
		for k := range Reporters {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	} else {
		rptr, args = Reporters[args[0]](Reporters, args[1:], fmtr, conf)
	}

	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "unconsumed commandline options: '%v'\n", strings.Join(args, " "))
		Usage(ErrorCodes["opts"])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errors.Logf("INFO", "loaded data, about to start mining")
	start := time.Now()
	mineErr := mode.Mine(ctx, dt, rptr, fmtr)
	errors.Logf("INFO", "runtime: %v", time.Since(start))
	errors.Logf("INFO", "count: %d", mode.Visited())

	code := 0
	if e := mode.Close(); e != nil {
		errors.Logf("ERROR", "error closing %v", e)
		code++
	}
	if mineErr == context.DeadlineExceeded || mineErr == context.Canceled {
		errors.Logf("WARN", "mining was cut off (%v), the reported patterns are complete up to that point", mineErr)
	} else if mineErr != nil {
		fmt.Fprintf(os.Stderr, "There was error during the mining process\n")
		fmt.Fprintf(os.Stderr, "%v\n", mineErr)
		code++
	} else {
		errors.Logf("INFO", "Done!")
	}
	return code
}
