package track

import (
	"fmt"
	"strings"
)

/*------------------------------------------------------------------
 *
 * Purpose:	Locate occurrences of an "ad" track inside a target track
 *		by normalized-energy cross-correlation.
 *
 * Description:	Unlike the reference implementation this is grounded on
 *		(original_source/sound_seg.c's tr_identify, which reads
 *		only target->head->block->data and ad->head->block->data
 *		directly -- correct only for single-segment tracks), this
 *		always reads the full flattened sample stream of both
 *		tracks through Track.Read first. A single-segment track is
 *		simply the common case of that same code path, not a
 *		special one, so multi-segment tracks built up out of
 *		inserts and writes are identified correctly too.
 *
 *------------------------------------------------------------------*/

const correlationThreshold = 0.95

// Identify reports non-overlapping, earliest-wins occurrences of ad
// within target, using the spec's fixed 0.95 correlation threshold. Each
// match is reported as "start,end" (end inclusive), one per line; the
// result is empty if target or ad is empty, or if ad is longer than
// target.
func Identify(target, ad *Track) string {
	return IdentifyWithThreshold(target, ad, correlationThreshold)
}

// IdentifyWithThreshold is Identify with the 0.95 multiplier replaced by
// threshold, letting a caller (e.g. the CLI's config file) tune sensitivity
// without touching the matching algorithm itself.
func IdentifyWithThreshold(target, ad *Track, threshold float64) string {
	targetLen := target.Length()
	adLen := ad.Length()
	if targetLen == 0 || adLen == 0 || adLen > targetLen {
		return ""
	}

	targetData := make([]int16, targetLen)
	target.Read(targetData, 0, targetLen)

	adData := make([]int16, adLen)
	ad.Read(adData, 0, adLen)

	var reference float64
	for _, v := range adData {
		reference += float64(v) * float64(v)
	}
	reference /= float64(adLen)

	var out strings.Builder
	first := true

	for pos := 0; pos+adLen <= targetLen; {
		var corr float64
		window := targetData[pos : pos+adLen]
		for i, v := range window {
			corr += float64(v) * float64(adData[i])
		}
		corr /= float64(adLen)

		if corr >= threshold*reference {
			end := pos + adLen - 1
			if !first {
				out.WriteByte('\n')
			}
			fmt.Fprintf(&out, "%d,%d", pos, end)
			first = false
			pos = end + 1
			continue
		}
		pos++
	}

	return out.String()
}
