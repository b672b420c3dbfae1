// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2"
	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/audioforge/decodekit/metadata"
)

func init() {
	metadata.Register(metadata.Registration{
		Name:       "MP3",
		Extensions: []string{"mp3"},
		Handler:    handler{},
	})
}

type handler struct{}

func (handler) ReadFile(path string) (*metadata.File, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open id3: %w", err)
	}
	defer tag.Close()

	file := &metadata.File{Tags: tagsFromFrames(tag)}

	props, err := readProperties(path, int64(tag.Size()))
	if err != nil {
		return nil, err
	}
	file.Properties = props

	return file, nil
}

// WriteFile replaces the file's ID3v2 tag.  A tag is written even when
// the file had none.
func (handler) WriteFile(path string, tags *metadata.Tags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open id3: %w", err)
	}
	defer tag.Close()

	applyTags(tag, tags)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save id3: %w", err)
	}
	return nil
}

func tagsFromFrames(tag *id3v2.Tag) metadata.Tags {
	tags := metadata.Tags{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
		Genre:  tag.Genre(),
		Year:   tag.Year(),
	}

	tags.AlbumArtist = tag.GetTextFrame("TPE2").Text
	tags.TrackNumber, tags.TrackTotal = parsePositionPair(tag.GetTextFrame("TRCK").Text)
	tags.DiscNumber, tags.DiscTotal = parsePositionPair(tag.GetTextFrame("TPOS").Text)

	for _, f := range tag.GetFrames(tag.CommonID("Unsynchronised lyrics/text transcription")) {
		if uslf, ok := f.(id3v2.UnsynchronisedLyricsFrame); ok {
			tags.Lyrics = uslf.Lyrics
			break
		}
	}
	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		if comment, ok := f.(id3v2.CommentFrame); ok {
			tags.Comment = comment.Text
			break
		}
	}

	return tags
}

func applyTags(tag *id3v2.Tag, tags *metadata.Tags) {
	setText(tag, tag.CommonID("Title/Songname/Content description"), tags.Title)
	setText(tag, tag.CommonID("Lead artist/Lead performer/Soloist/Performing group"), tags.Artist)
	setText(tag, "TPE2", tags.AlbumArtist)
	setText(tag, tag.CommonID("Album/Movie/Show title"), tags.Album)
	setText(tag, tag.CommonID("Content type"), tags.Genre)
	setText(tag, tag.CommonID("Year"), tags.Year)
	setText(tag, "TRCK", formatPositionPair(tags.TrackNumber, tags.TrackTotal))
	setText(tag, "TPOS", formatPositionPair(tags.DiscNumber, tags.DiscTotal))

	lyricsID := tag.CommonID("Unsynchronised lyrics/text transcription")
	tag.DeleteFrames(lyricsID)
	if tags.Lyrics != "" {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "eng",
			ContentDescriptor: "",
			Lyrics:            tags.Lyrics,
		})
	}

	commentID := tag.CommonID("Comments")
	tag.DeleteFrames(commentID)
	if tags.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        tags.Comment,
		})
	}
}

func setText(tag *id3v2.Tag, id, value string) {
	tag.DeleteFrames(id)
	if value != "" {
		tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
	}
}

// parsePositionPair splits "3/12" style track and disc frames.
func parsePositionPair(s string) (number, total int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		total, _ = strconv.Atoi(strings.TrimSpace(s[i+1:]))
		s = s[:i]
	}
	number, _ = strconv.Atoi(strings.TrimSpace(s))
	return number, total
}

func formatPositionPair(number, total int) string {
	switch {
	case number > 0 && total > 0:
		return fmt.Sprintf("%d/%d", number, total)
	case number > 0:
		return strconv.Itoa(number)
	default:
		return ""
	}
}

// readProperties decodes the stream headers to derive the audio
// characteristics.  tagSize is subtracted from the file size when
// estimating the bitrate.
func readProperties(path string, tagSize int64) (metadata.Properties, error) {
	f, err := os.Open(path)
	if err != nil {
		return metadata.Properties{}, fmt.Errorf("open mp3: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return metadata.Properties{}, fmt.Errorf("stat mp3: %w", err)
	}

	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return metadata.Properties{}, fmt.Errorf("decode mp3: %w", err)
	}

	props := metadata.Properties{
		SampleRate: dec.SampleRate(),
		Channels:   2,
	}

	if length := dec.Length(); length > 0 {
		props.TotalFrames = length / 4
		seconds := float64(props.TotalFrames) / float64(dec.SampleRate())
		props.Duration = time.Duration(seconds * float64(time.Second))
		if seconds > 0 {
			audioBytes := info.Size() - tagSize
			props.BitRate = int(float64(audioBytes*8) / seconds)
		}
	}

	return props, nil
}
