package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	httpadapter "github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/adapters/http"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/domain"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/generator"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/ports"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/render"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/solver"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/usecase"
	"github.com/ChessGipsy/A-Puzzle-A-Day-solver/internal/validator"
)

var log = logrus.New()

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": sw.status,
			"bytes":  sw.bytes,
			"dur":    time.Since(start).Round(time.Millisecond),
		}).Info("http")
	})
}

func main() {
	solverKind := flag.String("solver", "dlx", "solver to use: dlx|backtrack")
	serveAddr := flag.String("serve", "", "serve the JSON API on this address instead of solving one date")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	prof := flag.Bool("profile", false, "write a CPU profile")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <month> <day>\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "examples:\n  apuzzle July 6\n  apuzzle 7 6\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if lvl, err := logrus.ParseLevel(strings.ToLower(*levelStr)); err == nil {
		log.SetLevel(lvl)
	}
	if *prof {
		defer profile.Start().Stop()
	}

	board := domain.NewCalendarBoard()
	pieces := domain.DefaultPieces()
	var gen ports.Generator = generator.New()
	placements, err := gen.Generate(context.Background(), board, pieces)
	if err != nil {
		log.Fatalf("placement generation: %v", err)
	}
	log.WithField("placements", len(placements)).Debug("generated placements")

	var s ports.Solver
	switch strings.ToLower(strings.TrimSpace(*solverKind)) {
	case "backtrack", "backtracking":
		s = solver.NewBacktrackingSolver(board, placements)
	default:
		s = solver.NewDLXSolver(board, placements)
	}
	uc := usecase.NewService(board, s, validator.New())

	if *serveAddr != "" {
		serve(uc, *serveAddr)
		return
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	month, ok := domain.ParseMonth(flag.Arg(0))
	if !ok {
		log.Fatalf("invalid month %q", flag.Arg(0))
	}
	day, err := strconv.Atoi(flag.Arg(1))
	if err != nil || day < 1 || day > 31 {
		log.Fatalf("invalid day %q", flag.Arg(1))
	}

	sol, target, st, err := uc.SolveDate(context.Background(), month, day)
	if errors.Is(err, domain.ErrNoSolution) {
		fmt.Println("No solution.")
		printStats(st)
		return
	}
	if err != nil {
		log.Fatalf("solve: %v", err)
	}
	if ok, conflicts, err := uc.Check(target, sol); err != nil || !ok {
		log.Fatalf("solution failed verification: err=%v conflicts=%v", err, conflicts)
	}

	structured, err := json.Marshal(sol.ByPiece())
	if err != nil {
		log.Fatalf("encode solution: %v", err)
	}
	fmt.Println(string(structured))

	drawn, err := render.Board(board, sol, month, day)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Println("\nSolution layout:")
	fmt.Print(drawn)
	fmt.Println()
	printStats(st)
}

func printStats(st ports.Stats) {
	fmt.Printf("Tries: %d\n", st.Attempts)
	fmt.Printf("Time:  %.3f s\n", st.Duration.Seconds())
}

func serve(uc *usecase.Service, addr string) {
	h := httpadapter.New(uc)
	mux := http.NewServeMux()
	h.Register(mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           requestLogger(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
