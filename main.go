package main

import (
	"context"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/macho/config"
	"github.com/milk9111/macho/script"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	scriptPath string
	fullscreen bool
	watch      bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "macho",
		Short:        "Place namespaces and definitions on a zoomable canvas",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML config overriding the built-in defaults")
	cmd.Flags().StringVarP(&opts.scriptPath, "script", "s", "", "tengo script run against the editor at startup")
	cmd.Flags().BoolVar(&opts.fullscreen, "fullscreen", false, "start fullscreen")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload styles and zoom settings when the config file changes")
	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	game, err := NewGame(cfg, opts.configPath)
	if err != nil {
		return err
	}

	if opts.scriptPath != "" {
		if err := script.RunFile(ctx, game.editor, opts.scriptPath); err != nil {
			return err
		}
		log.Printf("ran %s: %d shapes", opts.scriptPath, game.editor.Stage().Len())
	}

	if opts.watch {
		if opts.configPath == "" {
			log.Println("--watch ignored: no --config file given")
		} else {
			w, err := config.NewWatcher(opts.configPath)
			if err != nil {
				return err
			}
			defer w.Close()
			game.Watch(w)
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Println("editor starting...")
	return ebiten.RunGame(game)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
