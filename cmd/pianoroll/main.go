package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"gioui.org/app"
	"github.com/a5af/pianoroll"
	"github.com/a5af/pianoroll/editor"
	"github.com/a5af/pianoroll/editor/gioui"
	"github.com/a5af/pianoroll/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	cpuprofile string
)

var rootCmd = &cobra.Command{
	Use:   "pianoroll [file]",
	Short: "Piano roll editor for MIDI files",
	Long: `Opens a Standard MIDI File (.mid, .midi) or a document in the yaml format
in the piano roll editor. Without a file, the last session is restored
from the recovery file, if there is one.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	RunE:              runEditor,
	SilenceUsage:      true,
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print a summary of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var exportCmd = &cobra.Command{
	Use:   "export <in> <out>",
	Short: "Convert a document between the MIDI and yaml formats",
	Long: `Reads <in> and writes it to <out>. The output format is chosen by the
extension of <out>: .mid and .midi give a Standard MIDI File, anything else
the yaml format.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pianoroll %s\n", version.VersionOrHash)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	rootCmd.AddCommand(infoCmd, exportCmd, versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	var profile *os.File
	if cpuprofile != "" {
		var err error
		profile, err = os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(profile); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
	}
	broker := editor.NewBroker()
	model := editor.NewModel(broker, gioui.RecoveryFilePath())
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		if err := model.ReadDocument(f); err != nil {
			return err
		}
	} else if model.History().LoadRecoveryFile() {
		log.WithField("path", gioui.RecoveryFilePath()).Info("restored previous session")
	}
	editorUi := gioui.NewEditor(model)
	go func() {
		editorUi.Main()
		if profile != nil {
			pprof.StopCPUProfile()
			profile.Close()
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func readDocument(path string) (pianoroll.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return pianoroll.Document{}, err
	}
	doc, err := editor.DecodeDocument(b)
	if err != nil {
		return pianoroll.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if doc.Title != "" {
		fmt.Fprintf(out, "title:    %s\n", doc.Title)
	}
	fmt.Fprintf(out, "duration: %.3f s\n", doc.Duration)
	fmt.Fprintf(out, "tempo:    %g bpm\n", doc.BPM())
	fmt.Fprintf(out, "notes:    %d\n", doc.NoteCount())
	if b, ok := doc.Bounds(); ok {
		fmt.Fprintf(out, "range:    %s - %s\n", pianoroll.NoteName(b.Low), pianoroll.NoteName(b.High))
	}
	for _, t := range doc.Tracks {
		fmt.Fprintf(out, "track %s: %q, %d notes", t.ID, t.Name, len(t.Notes))
		if t.Instrument != "" {
			fmt.Fprintf(out, ", %s", t.Instrument)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	b, err := editor.EncodeDocument(doc, args[1])
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], b, 0o644); err != nil {
		return err
	}
	log.WithFields(log.Fields{"in": args[0], "out": args[1], "bytes": len(b)}).Info("document exported")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
