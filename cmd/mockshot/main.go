// Command mockshot is a CLI for exporting social post mockups and maintaining the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/browser"

	"github.com/ibeckermayer/mockshot/internal/app"
	"github.com/ibeckermayer/mockshot/internal/config"
	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/store"
	"github.com/ibeckermayer/mockshot/internal/types"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Get key-value in .env file
	godotenv.Load()

	args := os.Args[2:]
	switch os.Args[1] {
	case "serve":
		runServe()
	case "render":
		runRender(args)
	case "defaults":
		runDefaults(args)
	case "preview":
		runPreview(args)
	case "inspect":
		runInspect(args)
	case "history":
		runHistory(args)
	case "prune":
		runPrune()
	case "open":
		if len(args) < 1 {
			fmt.Println("Usage: mockshot open <config|cache|dump>")
			os.Exit(1)
		}
		runOpen(args[0])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: mockshot <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve                 Run the screenshot server")
	fmt.Println("  render [flags] FILE.. Export mockup JSON files to PNG")
	fmt.Println("  defaults PLATFORM     Print a default mockup for a platform (see -h for fields)")
	fmt.Println("  preview FILE          Open the rendered HTML of a mockup in the browser")
	fmt.Println("  inspect FILE          Load a mockup in a visible Chrome window")
	fmt.Println("  history [-n N]        List recent exports")
	fmt.Println("  prune                 Delete export history past retention")
	fmt.Println("  open config           Open config file in default editor")
	fmt.Println("  open cache            Open cache directory in file explorer")
	fmt.Println("  open dump             Open the latest HTML dump")
}

func loadConfig() *config.Config {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runServe() {
	cfg := loadConfig()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// readRequest accepts either a full export request or a bare serialized post
func readRequest(path string) (serializer.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return serializer.Request{}, err
	}

	var req serializer.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if req.Mockup != nil {
		return req, nil
	}

	var sp serializer.SerializedPost
	if err := json.Unmarshal(data, &sp); err != nil {
		return req, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	req.Mockup = &sp
	return req, nil
}

// countFlag accepts counts the way platforms display them ("1.5K")
type countFlag struct{ n *int }

func (c countFlag) String() string {
	if c.n == nil {
		return "0"
	}
	return fmt.Sprint(*c.n)
}

func (c countFlag) Set(s string) error {
	n, err := types.ParseCount(s)
	if err != nil {
		return err
	}
	*c.n = n
	return nil
}

func runDefaults(args []string) {
	platform := types.PlatformTwitter
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		platform = types.Platform(args[0])
		args = args[1:]
	}
	if !platform.Valid() {
		log.Fatalf("Unknown platform %q (want one of %v)", platform, types.Platforms)
	}

	p := types.DefaultPost(platform, time.Now())

	fs := flag.NewFlagSet("defaults", flag.ExitOnError)
	theme := fs.String("theme", string(p.Theme), "light, dark or dim")
	fs.StringVar(&p.Author.Name, "name", p.Author.Name, "author name")
	fs.StringVar(&p.Author.Handle, "handle", p.Author.Handle, "author handle")
	fs.StringVar(&p.Author.Avatar, "avatar", p.Author.Avatar, "avatar URL")
	fs.BoolVar(&p.Author.Verified, "verified", p.Author.Verified, "show a verified badge")
	fs.StringVar(&p.Content, "content", p.Content, "post text")
	fs.Var(countFlag{&p.Metrics.Likes}, "likes", "like count, e.g. 1.5K")
	fs.Var(countFlag{&p.Metrics.Comments}, "comments", "comment count")
	fs.Var(countFlag{&p.Metrics.Reposts}, "reposts", "repost count")
	fs.Var(countFlag{&p.Metrics.Views}, "views", "view count (Twitter)")
	fs.Parse(args)

	p.Theme = types.Theme(*theme)

	sp := serializer.Serialize(p)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(serializer.Request{Mockup: &sp, Scale: 2}); err != nil {
		log.Fatalf("Failed to encode: %v", err)
	}
}

func runHistory(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	n := fs.Int("n", 20, "number of exports to show")
	fs.Parse(args)

	st := openStore(loadConfig())
	defer st.Close()

	ctx := context.Background()
	exports, err := st.ListExports(ctx, *n)
	if err != nil {
		log.Fatalf("Failed to list exports: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tPLATFORM\tTHEME\tSCALE\tBYTES\tDURATION\tSTATUS")
	for _, e := range exports {
		status := e.Status
		if e.Error != "" {
			status += ": " + e.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx\t%d\t%v\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Platform, e.Theme, e.Scale, e.Bytes, e.Duration, status)
	}
	w.Flush()

	stats, err := st.Stats(ctx)
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}
	if len(stats) > 0 {
		fmt.Println()
		for _, s := range stats {
			fmt.Printf("%-10s %d ok, %d failed, %d bytes\n", s.Platform, s.Succeeded, s.Failed, s.Bytes)
		}
	}
}

func runPrune() {
	cfg := loadConfig()
	if cfg.Store.RetentionDays == 0 {
		log.Println("Retention is disabled; nothing to prune")
		return
	}

	st := openStore(cfg)
	defer st.Close()

	cutoff := time.Now().AddDate(0, 0, -cfg.Store.RetentionDays)
	n, err := st.PruneExports(context.Background(), cutoff)
	if err != nil {
		log.Fatalf("Failed to prune: %v", err)
	}
	log.Printf("Pruned %d exports older than %s", n, cutoff.Format(time.RFC3339))
}

func openStore(cfg *config.Config) *store.Store {
	dbPath, err := cfg.DBPath()
	if err != nil {
		log.Fatalf("Failed to resolve db path: %v", err)
	}
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open db: %v", err)
	}
	return st
}

func dumpDir() string {
	cacheDir, err := config.CacheDir()
	if err != nil {
		log.Fatalf("Failed to get cache dir: %v", err)
	}
	return filepath.Join(cacheDir, "html")
}

func runOpen(target string) {
	var path string
	var err error

	switch target {
	case "config":
		path, err = config.ConfigPath()
		if err == nil {
			if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
				if err := config.Default().SaveFile(path); err != nil {
					log.Fatalf("Failed to create config: %v", err)
				}
				log.Printf("Created default config at: %s", path)
			}
		}
	case "cache":
		path, err = config.CacheDir()
	case "dump":
		path, err = store.NewHTMLDumps(dumpDir()).Latest()
	default:
		fmt.Printf("Unknown target: %s\n", target)
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Failed to get path: %v", err)
	}

	if err := browser.OpenFile(path); err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
}
