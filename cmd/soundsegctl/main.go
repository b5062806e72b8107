/* Segmented-track PCM editor: read, write, delete, insert, identify, play. */
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/mdunlap/soundseg/config"
	"github.com/mdunlap/soundseg/internal/soundlog"
	"github.com/mdunlap/soundseg/track"
	"github.com/mdunlap/soundseg/wav"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "soundsegctl: %s\n", err)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var runErr error
	switch cmd {
	case "read":
		runErr = runRead(args)
	case "write":
		runErr = runWrite(args, cfg)
	case "delete":
		runErr = runDelete(args)
	case "insert":
		runErr = runInsert(args)
	case "identify":
		runErr = runIdentify(args, cfg)
	case "play":
		runErr = runPlay(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "soundsegctl: unknown command %q\n", cmd)
		usage()
		os.Exit(1)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "soundsegctl: %s\n", runErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("\tsoundsegctl read     --in FILE --pos P --len N")
	fmt.Println("\tsoundsegctl write    --in FILE --out FILE --src FILE --pos P")
	fmt.Println("\tsoundsegctl delete   --in FILE --out FILE --pos P --len N")
	fmt.Println("\tsoundsegctl insert   --src FILE --dst FILE --out FILE --dstpos P --srcpos P --len N")
	fmt.Println("\tsoundsegctl identify --target FILE --ad FILE [--report FILE [-T strftime-format]]")
	fmt.Println("\tsoundsegctl play     --in FILE")
}

func runRead(args []string) error {
	fs := pflag.NewFlagSet("read", pflag.ExitOnError)
	in := fs.String("in", "", "input WAV file")
	pos := fs.Int("pos", 0, "start position")
	length := fs.Int("len", 0, "sample count")
	verbose := fs.BoolP("verbose", "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(*verbose)

	t, err := wav.LoadTrack(*in)
	if err != nil {
		return err
	}

	dst := make([]int16, *length)
	n := t.Read(dst, *pos, *length)
	for _, v := range dst[:n] {
		fmt.Println(v)
	}
	return nil
}

func runWrite(args []string, cfg config.Config) error {
	fs := pflag.NewFlagSet("write", pflag.ExitOnError)
	in := fs.String("in", "", "input WAV file")
	out := fs.String("out", "", "output WAV file")
	src := fs.String("src", "", "WAV file to write in")
	pos := fs.Int("pos", 0, "start position")
	verbose := fs.BoolP("verbose", "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(*verbose)

	t, err := wav.LoadTrack(*in)
	if err != nil {
		return err
	}
	patch, err := wav.ReadFile(*src)
	if err != nil {
		return err
	}

	if !cfg.ZeroFillWriteGaps && *pos > t.Length() {
		return fmt.Errorf("write: pos %d past end of track (%d samples) and zero_fill_write_gaps is disabled", *pos, t.Length())
	}
	t.Write(patch, *pos, len(patch))
	return wav.SaveTrack(*out, t)
}

func runDelete(args []string) error {
	fs := pflag.NewFlagSet("delete", pflag.ExitOnError)
	in := fs.String("in", "", "input WAV file")
	out := fs.String("out", "", "output WAV file")
	pos := fs.Int("pos", 0, "start position")
	length := fs.Int("len", 0, "sample count")
	verbose := fs.BoolP("verbose", "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(*verbose)

	t, err := wav.LoadTrack(*in)
	if err != nil {
		return err
	}
	if !t.DeleteRange(*pos, *length) {
		return fmt.Errorf("delete: range [%d,%d) refused -- blocked by an outstanding view, or out of bounds", *pos, *pos+*length)
	}
	return wav.SaveTrack(*out, t)
}

func runInsert(args []string) error {
	fs := pflag.NewFlagSet("insert", pflag.ExitOnError)
	srcFile := fs.String("src", "", "source WAV file")
	dstFile := fs.String("dst", "", "destination WAV file")
	out := fs.String("out", "", "output WAV file")
	dstPos := fs.Int("dstpos", 0, "insert position in destination")
	srcPos := fs.Int("srcpos", 0, "slice start in source")
	length := fs.Int("len", 0, "slice length")
	verbose := fs.BoolP("verbose", "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(*verbose)

	src, err := wav.LoadTrack(*srcFile)
	if err != nil {
		return err
	}
	dst, err := wav.LoadTrack(*dstFile)
	if err != nil {
		return err
	}
	if !track.Insert(src, dst, *dstPos, *srcPos, *length) {
		return fmt.Errorf("insert: [%d,%d) from %s into %s at %d refused -- out of bounds", *srcPos, *srcPos+*length, *srcFile, *dstFile, *dstPos)
	}
	return wav.SaveTrack(*out, dst)
}

func runIdentify(args []string, cfg config.Config) error {
	fs := pflag.NewFlagSet("identify", pflag.ExitOnError)
	targetFile := fs.String("target", "", "target WAV file to search")
	adFile := fs.String("ad", "", "ad WAV file to find")
	report := fs.String("report", "", "write matches to this file instead of stdout")
	timestampFormat := fs.StringP("timestamp-format", "T", "", "strftime format to append to -report's file name")
	verbose := fs.BoolP("verbose", "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(*verbose)

	target, err := wav.LoadTrack(*targetFile)
	if err != nil {
		return err
	}
	ad, err := wav.LoadTrack(*adFile)
	if err != nil {
		return err
	}

	matches := track.IdentifyWithThreshold(target, ad, cfg.CorrelationThreshold)

	reportPath := *report
	if reportPath != "" && *timestampFormat != "" {
		formatted, err := strftime.Format(*timestampFormat, time.Now())
		if err != nil {
			return fmt.Errorf("identify: bad -timestamp-format: %w", err)
		}
		reportPath = reportPath + "-" + formatted
	}

	if reportPath == "" {
		fmt.Println(matches)
		return nil
	}
	return os.WriteFile(reportPath, []byte(matches+"\n"), 0o644)
}

func runPlay(args []string) error {
	fs := pflag.NewFlagSet("play", pflag.ExitOnError)
	in := fs.String("in", "", "WAV file to play")
	verbose := fs.BoolP("verbose", "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	applyVerbosity(*verbose)

	t, err := wav.LoadTrack(*in)
	if err != nil {
		return err
	}
	n := t.Length()
	samples := make([]int16, n)
	t.Read(samples, 0, n)

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("play: initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	const framesPerBuffer = 2048
	buf := make([]int16, framesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(wav.SampleRate()), framesPerBuffer, buf)
	if err != nil {
		return fmt.Errorf("play: opening default output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("play: starting stream: %w", err)
	}
	defer stream.Stop()

	soundlog.Infof("play: streaming %d samples from %s", n, *in)
	for off := 0; off < n; off += framesPerBuffer {
		end := off + framesPerBuffer
		if end > n {
			end = n
		}
		clear(buf)
		copy(buf, samples[off:end])
		if err := stream.Write(); err != nil {
			return fmt.Errorf("play: writing to stream: %w", err)
		}
	}
	return nil
}

func applyVerbosity(verbose bool) {
	if verbose {
		soundlog.SetLevel(log.DebugLevel)
	}
}
