package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/pkg/profile"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/akmistry/rangechain/internal/app/rangechain"
	"github.com/akmistry/rangechain/internal/chain"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Verbose logging")
	jsonFlag    = flag.Bool("json", false, "Print answers as a JSON object")
	indexedFlag = flag.Bool("indexed", false, "Use an indexed lookup for point translation")

	profileDir = flag.String("profile", "", "write cpu profile to this directory")
)

type answer struct {
	name  string
	value int64
}

func main() {
	flag.Parse()
	os.Exit(run())
}

// run returns the process exit code. Deferred cleanup, such as stopping the
// profiler, happens before main exits.
func run() int {
	if flag.NArg() != 2 {
		log.Print("Usage: rangechain [flags] <almanac|coverage> <INPUT_FILE>")
		return 1
	}
	mode := flag.Arg(0)
	inputPath := flag.Arg(1)

	if *verboseFlag {
		slog.SetDefault(slog.New(slog.NewTextHandler(
			os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir), profile.Quiet).Stop()
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		log.Print(err)
		return 1
	}

	var answers []answer
	switch mode {
	case "almanac":
		answers, err = solveAlmanac(string(input))
	case "coverage":
		answers, err = solveCoverage(string(input))
	default:
		log.Printf("Unknown mode %q", mode)
		return 1
	}
	if err != nil {
		log.Printf("Error solving %s: %v", inputPath, err)
		return 1
	}

	if err := printAnswers(mode, answers); err != nil {
		log.Print(err)
		return 1
	}
	return 0
}

func solveAlmanac(input string) ([]answer, error) {
	opts := rangechain.ParseOptions{
		Chain: chain.Options{PointIndex: *indexedFlag},
	}
	a, err := rangechain.ParseAlmanacWithOptions(input, opts)
	if err != nil {
		return nil, err
	}
	slog.Debug("Parsed almanac", "seeds", len(a.Seeds), "stages", len(a.Chain.Stages()))

	lowestPoint, err := a.LowestPoint()
	if err != nil {
		return nil, err
	}
	lowestRange, err := a.LowestRange()
	if err != nil {
		return nil, err
	}
	return []answer{
		{"lowest_point", lowestPoint},
		{"lowest_range", lowestRange},
	}, nil
}

func solveCoverage(input string) ([]answer, error) {
	c, err := rangechain.ParseCoverage(input)
	if err != nil {
		return nil, err
	}
	slog.Debug("Parsed coverage", "ranges", c.Ranges.Count(), "ids", len(c.IDs))

	return []answer{
		{"covered_ids", int64(c.CountCovered())},
		{"total_covered", c.TotalCovered()},
	}, nil
}

func printAnswers(mode string, answers []answer) error {
	if !*jsonFlag {
		for _, a := range answers {
			fmt.Printf("%s: %d\n", a.name, a.value)
		}
		return nil
	}

	b, err := answersJSON(mode, answers)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

// answersJSON encodes answers as decimal strings, as protojson does for
// int64 fields. A JSON number is a float64 and loses precision above 2^53.
func answersJSON(mode string, answers []answer) ([]byte, error) {
	fields := map[string]any{"mode": mode}
	for _, a := range answers {
		fields[a.name] = strconv.FormatInt(a.value, 10)
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}
