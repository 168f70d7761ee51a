package gedcom

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/liseur-glitch/gedbridge/errors"
)

// ScanFile reads and scans a source tree file. Files are expected in
// UTF-8; anything that is not valid UTF-8 is decoded as Windows-1252,
// which is what older exports use.
func ScanFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read source tree %s", path)
	}

	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, errors.Wrapf(err, "decode source tree %s", path)
		}
		data = decoded
	}

	return Scan(bytes.NewReader(data))
}

// Scan parses a source tree from UTF-8 text. Unrecognized lines are
// skipped; structure errors never abort the scan.
func Scan(r io.Reader) (*Tree, error) {
	tree := &Tree{}

	var indi *Individual
	var fam *Family
	var event *Event
	var participant *Participant

	closeEvent := func() {
		if event == nil {
			return
		}
		if indi != nil {
			indi.Events = append(indi.Events, *event)
		} else if fam != nil {
			fam.Events = append(fam.Events, *event)
		}
		event = nil
		participant = nil
	}
	closeRecord := func() {
		closeEvent()
		if indi != nil {
			tree.Individuals = append(tree.Individuals, indi)
			indi = nil
		}
		if fam != nil {
			tree.Families = append(tree.Families, fam)
			fam = nil
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		level, tag, value, ok := splitLine(scanner.Text())
		if !ok {
			continue
		}

		switch {
		case level == 0:
			closeRecord()
			xref, kind := splitZeroLevel(tag, value)
			switch kind {
			case "INDI":
				indi = &Individual{ID: xref}
			case "FAM":
				fam = &Family{ID: xref}
			}

		case level == 1 && indi != nil:
			closeEvent()
			switch {
			case tag == "REFN":
				indi.Reference = strings.TrimSpace(value)
			case eventTags[tag]:
				event = &Event{Tag: tag}
				if tag == "EVEN" || tag == "FACT" || tag == "OCCU" {
					event.Type = strings.TrimSpace(value)
				}
			}

		case level == 1 && fam != nil:
			closeEvent()
			switch {
			case tag == "HUSB":
				fam.HusbandID = trimXRef(value)
			case tag == "WIFE":
				fam.WifeID = trimXRef(value)
			case eventTags[tag]:
				event = &Event{Tag: tag}
			}

		case level == 2 && event != nil:
			switch tag {
			case "DATE":
				event.Date = strings.TrimSpace(value)
			case "TYPE":
				event.Type = strings.TrimSpace(value)
			case "_SHAR":
				event.Participants = append(event.Participants, Participant{
					ID:   trimXRef(value),
					Role: "Witness",
				})
				participant = &event.Participants[len(event.Participants)-1]
			}

		case level == 3 && participant != nil:
			switch tag {
			case "ROLE":
				participant.Role = strings.TrimSpace(value)
			case "NOTE", "CONT":
				if participant.Note != "" {
					participant.Note += " "
				}
				participant.Note += strings.TrimSpace(value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan source tree")
	}
	closeRecord()

	return tree, nil
}

// splitLine breaks "2 DATE 10 OCT 1750" into level, tag and value.
func splitLine(line string) (level int, tag, value string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if len(parts) < 2 {
		return 0, "", "", false
	}
	level, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", "", false
	}
	tag = parts[1]
	if len(parts) > 2 {
		value = parts[2]
	}
	return level, tag, value, true
}

// splitZeroLevel handles "0 @I123@ INDI": the cross-reference comes
// before the record kind.
func splitZeroLevel(tag, value string) (xref, kind string) {
	if strings.HasPrefix(tag, "@") {
		return trimXRef(tag), strings.TrimSpace(value)
	}
	return "", tag
}

func trimXRef(s string) string {
	return strings.Trim(strings.TrimSpace(s), "@")
}
