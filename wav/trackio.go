package wav

/*------------------------------------------------------------------
 *
 * Purpose:	Bridge between the flat []int16 codec above and a
 *		*track.Track.
 *
 * Description:	These are convenience wrappers for the CLI: loading a
 *		file straight into a fresh Track, and flattening a Track
 *		straight out to a file. Neither belongs on the Track type
 *		itself -- package track has no notion of files, by design
 *		(SPEC_FULL.md keeps WAV I/O an external collaborator).
 *
 *------------------------------------------------------------------*/

import (
	"fmt"

	"github.com/mdunlap/soundseg/track"
)

// LoadTrack reads path and returns a new Track containing its samples as a
// single segment.
func LoadTrack(path string) (*track.Track, error) {
	samples, err := ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wav: load %s: %w", path, err)
	}
	t := track.NewTrack()
	t.Write(samples, 0, len(samples))
	return t, nil
}

// SaveTrack flattens t's current contents and writes them to path as a
// canonical PCM16/mono/8kHz WAV file.
func SaveTrack(path string, t *track.Track) error {
	n := t.Length()
	samples := make([]int16, n)
	t.Read(samples, 0, n)
	if err := WriteFile(path, samples); err != nil {
		return fmt.Errorf("wav: save %s: %w", path, err)
	}
	return nil
}
