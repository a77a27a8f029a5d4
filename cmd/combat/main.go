package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/peterkuimelis/combat/internal/game"
	"github.com/peterkuimelis/combat/internal/log"
	combatnet "github.com/peterkuimelis/combat/internal/net"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	cmd := os.Args[1]
	switch cmd {
	case "solve":
		err = runSolve(ctx, os.Args[2:])
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "query":
		err = runQuery(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  combat solve [--input FILE | --decks FILE --deck N] [--max-rounds N] [--fingerprint MODE] [--verbose]")
	fmt.Println("  combat play  [--input FILE | --decks FILE --deck N] [--variant V] [--max-rounds N] [--fingerprint MODE] [--verbose]")
	fmt.Println("  combat serve [--port P] [--decks FILE]")
	fmt.Println("  combat query [--addr ADDR] [--p1 CARDS --p2 CARDS | --deck N] [--variant V]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  solve   Play the simple and recursive games on one deal and print both scores")
	fmt.Println("  play    Play one variant and print the result")
	fmt.Println("  serve   Start the TCP game service")
	fmt.Println("  query   Send a play request to a running service")
}

// dealFlags are the flags shared by solve and play.
type dealFlags struct {
	input       *string
	decksFile   *string
	deck        *int
	maxRounds   *int
	fingerprint *string
	verbose     *bool
}

func addDealFlags(fs *flag.FlagSet) dealFlags {
	return dealFlags{
		input:       fs.String("input", "", "puzzle input file (Player 1:/Player 2: blocks)"),
		decksFile:   fs.String("decks", "decks.yaml", "path to decks file"),
		deck:        fs.Int("deck", 0, "deck number to use (from the decks file)"),
		maxRounds:   fs.Int("max-rounds", 0, "give up after this many rounds (0 = no limit)"),
		fingerprint: fs.String("fingerprint", "both", "repeat detection key: both or first-hand"),
		verbose:     fs.Bool("verbose", false, "print every round"),
	}
}

func (f dealFlags) hands() ([2][]int, error) {
	switch {
	case *f.input != "":
		return game.ReadHandsFile(*f.input)
	case *f.deck > 0:
		d, err := game.DeckByNumber(*f.decksFile, *f.deck)
		if err != nil {
			return [2][]int{}, err
		}
		return d.Hands(), nil
	default:
		return [2][]int{}, fmt.Errorf("need --input FILE or --deck N")
	}
}

func (f dealFlags) textLogger() log.EventLogger {
	if !*f.verbose {
		return nil
	}
	return log.NewTextLogger(os.Stdout)
}

func runSolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	df := addDealFlags(fs)
	fs.Parse(args)

	hands, err := df.hands()
	if err != nil {
		return err
	}
	fp, err := game.ParseFingerprintMode(*df.fingerprint)
	if err != nil {
		return err
	}

	opts := game.SolveOptions{MaxRounds: *df.maxRounds, Fingerprint: fp}
	return solve(ctx, os.Stdout, hands, opts, *df.verbose)
}

// solve plays both variants and writes the answers to w. With verbose set
// each game's transcript is buffered as text and written once both finish.
func solve(ctx context.Context, w io.Writer, hands [2][]int, opts game.SolveOptions, verbose bool) error {
	var simpleOut, recursiveOut bytes.Buffer
	if verbose {
		opts.SimpleLogger = log.NewTextLogger(&simpleOut)
		opts.RecursiveLogger = log.NewTextLogger(&recursiveOut)
	}

	sol, err := game.Solve(ctx, hands, opts)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintln(w, "== Simple game ==")
		simpleOut.WriteTo(w)
		fmt.Fprintln(w, "== Recursive game ==")
		recursiveOut.WriteTo(w)
		fmt.Fprintln(w)
	}

	p1, p2 := sol.Scores()
	fmt.Fprintf(w, "Solution: (%d, %d), took %s\n", p1, p2, sol.Elapsed.Round(time.Microsecond))
	printResult(w, game.VariantSimple, sol.Simple)
	printResult(w, game.VariantRecursive, sol.Recursive)
	return nil
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	df := addDealFlags(fs)
	variant := fs.String("variant", "recursive", "simple or recursive")
	fs.Parse(args)

	hands, err := df.hands()
	if err != nil {
		return err
	}
	v, err := game.ParseVariant(*variant)
	if err != nil {
		return err
	}
	fp, err := game.ParseFingerprintMode(*df.fingerprint)
	if err != nil {
		return err
	}

	g, err := game.NewGame(game.GameConfig{
		Hand1:       hands[0],
		Hand2:       hands[1],
		Logger:      df.textLogger(),
		MaxRounds:   *df.maxRounds,
		Fingerprint: fp,
	})
	if err != nil {
		return err
	}
	res, err := g.Run(ctx, v)
	if err != nil {
		return err
	}
	printResult(os.Stdout, v, res)
	return nil
}

func printResult(w io.Writer, v game.Variant, r game.Result) {
	fmt.Fprintf(w, "%-9s winner %s, score %d, %d rounds", v, r.WinnerName(), r.Score(), r.Rounds)
	if r.SubGames > 0 {
		fmt.Fprintf(w, " (%d total, %d sub-games, depth %d)", r.TotalRounds, r.SubGames, r.MaxDepth)
	}
	if r.ByRepeat {
		fmt.Fprint(w, " by repeat")
	}
	fmt.Fprintf(w, "\n          deck: %s\n", log.FormatDeck(r.Deck))
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	decksFile := fs.String("decks", "decks.yaml", "path to decks file")
	fs.Parse(args)

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv := &combatnet.Server{
		DecksFile: *decksFile,
		Port:      *port,
		Logger:    logger,
	}
	return srv.Run(ctx)
}

func runQuery(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "service address to connect to")
	p1 := fs.String("p1", "", "player 1's cards, comma separated")
	p2 := fs.String("p2", "", "player 2's cards, comma separated")
	deck := fs.Int("deck", 0, "deck number from the service's decks file")
	variant := fs.String("variant", combatnet.VariantBoth, "simple, recursive or both")
	maxRounds := fs.Int("max-rounds", 0, "give up after this many rounds (0 = service default)")
	fs.Parse(args)

	msg := combatnet.ClientMessage{
		Type:       "play",
		DeckNumber: *deck,
		Variant:    *variant,
		MaxRounds:  *maxRounds,
	}
	var err error
	if msg.Player1, err = parseCardList(*p1); err != nil {
		return fmt.Errorf("--p1: %w", err)
	}
	if msg.Player2, err = parseCardList(*p2); err != nil {
		return fmt.Errorf("--p2: %w", err)
	}

	reply, err := combatnet.Query(ctx, *addr, msg)
	if err != nil {
		return err
	}
	if reply.Type == "error" {
		return fmt.Errorf("service: %s", reply.Error)
	}
	for _, r := range reply.Results {
		fmt.Printf("%-9s winner P%d, score %d, %d rounds\n", r.Variant, r.Winner, r.Score, r.Rounds)
	}
	return nil
}

func parseCardList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var cards []int
	for _, f := range strings.Split(s, ",") {
		c, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("card %q is not an integer", f)
		}
		cards = append(cards, c)
	}
	return cards, nil
}
