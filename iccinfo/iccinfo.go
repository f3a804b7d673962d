// Package iccinfo reads descriptive metadata from ICC colour profiles.
package iccinfo

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"seehuhn.de/go/icc"
)

const headerSize = 128

var (
	ErrNotFound     = errors.New("icc profile not found")
	ErrTooSmall     = errors.New("file too small to be an icc profile")
	ErrBadSignature = errors.New("not a valid icc profile")

	ErrNoLibrary      = errors.New("no icc profile directory configured")
	ErrOutsideLibrary = errors.New("icc profile path is outside the profile directory")
	ErrNotRegular     = errors.New("icc profile is not a regular file")
	ErrTooLarge       = errors.New("file too large to be an icc profile")
)

var deviceClasses = map[string]string{
	"scnr": "Input (Scanner)",
	"mntr": "Display (Monitor)",
	"prtr": "Output (Printer)",
	"link": "DeviceLink",
	"spac": "ColorSpace Conversion",
	"abst": "Abstract",
	"nmcl": "Named Color",
}

type spaceInfo struct {
	name     string
	channels int
}

var colorSpaces = map[string]spaceInfo{
	"XYZ ": {"XYZ", 3},
	"Lab ": {"CIELAB", 3},
	"Luv ": {"CIELUV", 3},
	"YCbr": {"YCbCr", 3},
	"Yxy ": {"CIE Yxy", 3},
	"RGB ": {"RGB", 3},
	"GRAY": {"Grayscale", 1},
	"HSV ": {"HSV", 3},
	"HLS ": {"HLS", 3},
	"CMYK": {"CMYK", 4},
	"CMY ": {"CMY", 3},
	"2CLR": {"2 Color", 2},
	"3CLR": {"3 Color", 3},
	"4CLR": {"4 Color", 4},
	"5CLR": {"5 Color", 5},
	"6CLR": {"6 Color", 6},
	"7CLR": {"7 Color", 7},
	"8CLR": {"8 Color", 8},
}

// Info is the metadata of one profile.
type Info struct {
	ProfileName  string `json:"profile_name"`
	ColorSpace   string `json:"color_space"`
	DeviceClass  string `json:"device_class"`
	CreationDate string `json:"creation_date"`
	Description  string `json:"description"`
	Version      string `json:"version"`
	PCS          string `json:"pcs"`
	Channels     int    `json:"channels"`
	FileSize     int    `json:"file_size"`
}

// MaxProfileSize bounds how much of a profile file is read.
const MaxProfileSize = 16 << 20

// Library reads profiles stored under one directory.
type Library struct {
	dir string
}

// NewLibrary serves profiles from dir. A leading ~ expands to the home
// directory.
func NewLibrary(dir string) Library {
	if rest, ok := strings.CutPrefix(dir, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, rest)
		}
	}
	return Library{dir: dir}
}

// Dir is the directory profiles are read from.
func (l Library) Dir() string {
	return l.dir
}

// Read parses the profile at path. Relative paths are taken from the library
// directory; absolute paths must lie inside it.
func (l Library) Read(path string) (Info, error) {
	if l.dir == "" {
		return Info{}, ErrNoLibrary
	}
	full, err := l.resolve(path)
	if err != nil {
		return Info{}, err
	}

	st, err := os.Stat(full)
	if err != nil {
		return Info{}, err
	}
	if !st.Mode().IsRegular() {
		return Info{}, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if st.Size() > MaxProfileSize {
		return Info{}, fmt.Errorf("%w (%d bytes)", ErrTooLarge, st.Size())
	}

	f, err := os.Open(full)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxProfileSize+1))
	if err != nil {
		return Info{}, err
	}
	if len(data) > MaxProfileSize {
		return Info{}, fmt.Errorf("%w (more than %d bytes)", ErrTooLarge, MaxProfileSize)
	}

	stem := strings.TrimSuffix(filepath.Base(full), filepath.Ext(full))
	return Parse(data, stem)
}

// resolve maps path to a real file location inside the library, following
// symlinks before the containment check.
func (l Library) resolve(path string) (string, error) {
	root, err := filepath.Abs(l.dir)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)
	if !within(root, path) {
		return "", fmt.Errorf("%w: %s", ErrOutsideLibrary, path)
	}

	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("%w: profile directory %s", ErrNotFound, l.dir)
	}
	real, err := filepath.EvalSymlinks(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return "", err
	}
	if !within(realRoot, real) {
		return "", fmt.Errorf("%w: %s", ErrOutsideLibrary, path)
	}
	return real, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Parse reads the header and description tag of data. fallbackName is used
// as the profile name when there is no description.
func Parse(data []byte, fallbackName string) (Info, error) {
	if len(data) < headerSize {
		return Info{}, fmt.Errorf("%w (%d bytes)", ErrTooSmall, len(data))
	}
	if string(data[36:40]) != "acsp" {
		return Info{}, fmt.Errorf("%w: missing 'acsp' signature", ErrBadSignature)
	}

	v := binary.BigEndian.Uint32(data[8:12])
	var d [6]uint16
	for i := range d {
		d[i] = binary.BigEndian.Uint16(data[24+2*i:])
	}

	space := lookupSpace(data[16:20])
	info := Info{
		Version:      fmt.Sprintf("%d.%d.%d", v>>24&0xff, v>>20&0x0f, v>>16&0x0f),
		DeviceClass:  lookup(deviceClasses, data[12:16]),
		ColorSpace:   space.name,
		PCS:          lookupSpace(data[20:24]).name,
		CreationDate: fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", d[0], d[1], d[2], d[3], d[4], d[5]),
		Description:  description(data),
		Channels:     space.channels,
		FileSize:     len(data),
	}
	if p, err := icc.Decode(data); err == nil {
		switch p.ColorSpace {
		case icc.GraySpace, icc.RGBSpace, icc.CMYKSpace, icc.CIELabSpace:
			info.Channels = p.ColorSpace.NumComponents()
		}
	}
	info.ProfileName = info.Description
	if info.ProfileName == "" {
		info.ProfileName = fallbackName
	}
	return info, nil
}

func lookup(table map[string]string, sig []byte) string {
	if name, ok := table[string(sig)]; ok {
		return name
	}
	return strings.TrimSpace(string(sig))
}

func lookupSpace(sig []byte) spaceInfo {
	if s, ok := colorSpaces[string(sig)]; ok {
		return s
	}
	return spaceInfo{name: strings.TrimSpace(string(sig))}
}

// description finds the desc tag in the tag table and decodes it.
func description(data []byte) string {
	if len(data) < headerSize+4 {
		return ""
	}
	count := int(binary.BigEndian.Uint32(data[headerSize:]))
	if count < 0 || headerSize+4+count*12 > len(data) {
		return ""
	}
	for i := range count {
		entry := data[headerSize+4+i*12:]
		if string(entry[:4]) != "desc" {
			continue
		}
		off := int(binary.BigEndian.Uint32(entry[4:8]))
		size := int(binary.BigEndian.Uint32(entry[8:12]))
		if off < 0 || size < 0 || off+size > len(data) {
			return ""
		}
		return decodeText(data[off : off+size])
	}
	return ""
}

// decodeText handles the v2 textDescriptionType and v4
// multiLocalizedUnicodeType, returning the first record of the latter.
func decodeText(tag []byte) string {
	if len(tag) < 12 {
		return ""
	}
	switch string(tag[:4]) {
	case "desc":
		n := int(binary.BigEndian.Uint32(tag[8:12]))
		if n <= 0 || 12+n > len(tag) {
			return ""
		}
		return strings.TrimRight(string(tag[12:12+n]), "\x00")
	case "mluc":
		if len(tag) < 28 || binary.BigEndian.Uint32(tag[8:12]) == 0 {
			return ""
		}
		off := int(binary.BigEndian.Uint32(tag[20:24]))
		n := int(binary.BigEndian.Uint32(tag[24:28]))
		if off < 0 || n < 0 || off+n > len(tag) {
			return ""
		}
		dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
		s, err := dec.Bytes(tag[off : off+n])
		if err != nil {
			return ""
		}
		return string(bytes.TrimRight(s, "\x00"))
	}
	return ""
}
