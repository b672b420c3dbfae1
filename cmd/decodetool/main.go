// SPDX-License-Identifier: EPL-2.0

// Command decodetool inspects and extracts audio with the decodekit
// backends.
//
//	decodetool --list
//	decodetool song.mp3
//	decodetool --start 44100 --count 88200 -o clip.wav song.flac
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	flag "github.com/spf13/pflag"

	"github.com/audioforge/decodekit"
	"github.com/audioforge/decodekit/audio"
)

var (
	flagList    bool
	flagMIME    string
	flagStart   int64
	flagCount   int64
	flagRepeat  int
	flagOutput  string
	flagHelp    bool
	flagVersion bool
)

func init() {
	flag.BoolVarP(&flagList, "list", "l", false, "List supported formats and exit")
	flag.StringVarP(&flagMIME, "mime", "m", "", "MIME type hint for backend resolution")
	flag.Int64VarP(&flagStart, "start", "s", 0, "First frame of the region")
	flag.Int64VarP(&flagCount, "count", "c", 0, "Region length in frames (0 = to end)")
	flag.IntVarP(&flagRepeat, "repeat", "r", 0, "Extra times the region repeats")
	flag.StringVarP(&flagOutput, "output", "o", "", "Write the region as WAV to FILE")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

const helpString = `Inspect and extract audio through the decodekit backends

Usage: decodetool [OPTION]... [FILE]

Capabilities:
  -l, --list             List supported extensions and MIME types

Probing:
  -m, --mime=TYPE        Resolve the backend by MIME type before extension

Region export:
  -s, --start=NUM        First frame of the region (default: 0)
  -c, --count=NUM        Region length in frames (default: to end of file)
  -r, --repeat=NUM       Extra times the region repeats (default: 0)
  -o, --output=FILE      Write the region as 16-bit WAV to FILE

Miscellaneous:
  -h, --help             Prints this help message and exits
  -v, --version          Prints version information and exits
`

const versionString = "decodetool 1.0.0"

func main() {
	flag.Parse()

	switch {
	case flagHelp:
		fmt.Print(helpString)
		return
	case flagVersion:
		fmt.Println(versionString)
		return
	case flagList:
		listCapabilities()
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprint(os.Stderr, helpString)
		os.Exit(2)
	}
	path := flag.Arg(0)

	var err error
	if flagOutput != "" {
		err = exportRegion(path, flagOutput)
	} else {
		err = probe(path)
	}
	if err != nil {
		color.Red("decodetool: %v", err)
		os.Exit(1)
	}
}

func listCapabilities() {
	color.Cyan("Extensions:")
	fmt.Println("  " + strings.Join(decodekit.SupportedFileExtensions(), " "))
	color.Cyan("MIME types:")
	fmt.Println("  " + strings.Join(decodekit.SupportedMIMETypes(), " "))
}

func probe(path string) error {
	dec, err := audio.NewResolver().ResolveFile(path, flagMIME)
	if err != nil {
		return err
	}
	defer dec.Close()

	color.Green("%s", path)
	fmt.Printf("  source:   %s\n", dec.SourceFormatDescription())
	fmt.Printf("  decoded:  %s\n", dec.FormatDescription())

	if total := dec.TotalFrames(); total >= 0 {
		rate := dec.Format().SampleRate
		fmt.Printf("  frames:   %d (%.2fs)\n", total, float64(total)/float64(rate))
	} else {
		fmt.Println("  frames:   unknown")
	}
	fmt.Printf("  seekable: %v\n", dec.SupportsSeeking())

	return nil
}

func exportRegion(path, output string) error {
	region, err := openRegion(path)
	if err != nil {
		return err
	}
	defer region.Close()

	if region.TotalFrames() < 0 {
		return fmt.Errorf("region repeats forever, refusing to export")
	}

	format := region.Format()
	pcm := decodekit.ReadAllPCM16(region, 4096)

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := gowav.NewEncoder(out, format.SampleRate, 16, format.Channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(pcm)),
	}
	for i, s := range pcm {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	frames := len(pcm) / format.Channels
	color.Green("wrote %d frames to %s", frames, output)
	return nil
}

func openRegion(path string) (*audio.Region, error) {
	if flagRepeat != 0 && flagCount <= 0 {
		return nil, fmt.Errorf("--repeat requires --count")
	}

	dec, err := audio.NewResolver().ResolveFile(path, flagMIME)
	if err != nil {
		return nil, err
	}

	var region *audio.Region
	switch {
	case flagRepeat != 0:
		region = audio.NewRepeatingRegion(dec, flagStart, flagCount, flagRepeat)
	case flagCount > 0:
		region = audio.NewBoundedRegion(dec, flagStart, flagCount)
	default:
		region = audio.NewRegion(dec, flagStart)
	}

	if err := region.Open(); err != nil {
		dec.Close()
		return nil, err
	}
	return region, nil
}
