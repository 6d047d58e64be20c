// Package shelllink reads Windows shell link (.lnk) files.
//
// Only the parts needed to find a link's target and icon are decoded: the
// header, LinkInfo and StringData. The target ID list and extra data blocks
// are skipped.
package shelllink

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	headerSize = 0x4C
	// maxLinkInfoSize bounds the LinkInfo block, which is a few hundred
	// bytes in real links.
	maxLinkInfoSize = 64 << 10
)

var linkCLSID = [16]byte{
	0x01, 0x14, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
}

var (
	ErrNotShellLink = errors.New("shelllink: not a shell link")
	ErrTruncated    = errors.New("shelllink: truncated data")
)

// Flags is the LinkFlags header field.
type Flags uint32

const (
	HasLinkTargetIDList Flags = 1 << iota
	HasLinkInfo
	HasName
	HasRelativePath
	HasWorkingDir
	HasArguments
	HasIconLocation
	IsUnicode
)

const (
	infoVolumeIDAndLocalBasePath uint32 = 1 << iota
	infoCommonNetworkRelativeLink
)

type header struct {
	HeaderSize     uint32
	CLSID          [16]byte
	Flags          Flags
	FileAttributes uint32
	CreationTime   uint64
	AccessTime     uint64
	WriteTime      uint64
	FileSize       uint32
	IconIndex      int32
	ShowCommand    uint32
	HotKey         uint16
	_              uint16
	_              uint32
	_              uint32
}

// Link is a decoded shell link.
type Link struct {
	Flags          Flags
	FileAttributes uint32
	FileSize       uint32
	IconIndex      int

	LocalBasePath    string
	NetName          string
	CommonPathSuffix string

	Name         string
	RelativePath string
	WorkingDir   string
	Arguments    string
	IconLocation string

	// Dir is the directory the link was read from, used to resolve
	// RelativePath. Empty when read from a bare io.Reader.
	Dir string
}

// Target returns the path the link points at, or "" if it carries none.
func (l *Link) Target() string {
	switch {
	case l.LocalBasePath != "":
		return joinSuffix(l.LocalBasePath, l.CommonPathSuffix)
	case l.NetName != "":
		return joinSuffix(l.NetName, l.CommonPathSuffix)
	case l.RelativePath != "" && l.Dir != "":
		return joinWindows(l.Dir, l.RelativePath)
	default:
		return l.RelativePath
	}
}

// Read decodes a shell link from r.
func Read(r io.Reader) (*Link, error) {
	br := bufio.NewReader(r)

	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrNotShellLink
		}
		return nil, err
	}
	if h.HeaderSize != headerSize || h.CLSID != linkCLSID {
		return nil, ErrNotShellLink
	}

	l := &Link{
		Flags:          h.Flags,
		FileAttributes: h.FileAttributes,
		FileSize:       h.FileSize,
		IconIndex:      int(h.IconIndex),
	}

	if h.Flags&HasLinkTargetIDList != 0 {
		var n uint16
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, truncated(err)
		}
		if _, err := br.Discard(int(n)); err != nil {
			return nil, truncated(err)
		}
	}

	if h.Flags&HasLinkInfo != 0 {
		if err := l.readLinkInfo(br); err != nil {
			return nil, err
		}
	}

	unicodeStrings := h.Flags&IsUnicode != 0
	for _, f := range []struct {
		flag Flags
		dst  *string
	}{
		{HasName, &l.Name},
		{HasRelativePath, &l.RelativePath},
		{HasWorkingDir, &l.WorkingDir},
		{HasArguments, &l.Arguments},
		{HasIconLocation, &l.IconLocation},
	} {
		if h.Flags&f.flag == 0 {
			continue
		}
		s, err := readStringData(br, unicodeStrings)
		if err != nil {
			return nil, err
		}
		*f.dst = s
	}
	return l, nil
}

func (l *Link) readLinkInfo(r io.Reader) error {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return truncated(err)
	}
	if size < 0x1C || size > maxLinkInfoSize {
		return fmt.Errorf("%w: LinkInfo size %d", ErrTruncated, size)
	}
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf, size)
	if _, err := io.ReadFull(r, buf[4:]); err != nil {
		return truncated(err)
	}

	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(buf[off:]) }
	headerLen := u32(4)
	flags := u32(8)
	localBaseOff := u32(16)
	networkOff := u32(20)
	suffixOff := u32(24)

	var err error
	if headerLen >= 0x24 && int(size) >= 0x24 {
		if off := u32(28); off != 0 && flags&infoVolumeIDAndLocalBasePath != 0 {
			if l.LocalBasePath, err = utf16At(buf, off); err != nil {
				return err
			}
		}
		if off := u32(32); off != 0 {
			if l.CommonPathSuffix, err = utf16At(buf, off); err != nil {
				return err
			}
		}
	}
	if l.LocalBasePath == "" && flags&infoVolumeIDAndLocalBasePath != 0 {
		if l.LocalBasePath, err = ansiAt(buf, localBaseOff); err != nil {
			return err
		}
	}
	if l.CommonPathSuffix == "" && suffixOff != 0 {
		if l.CommonPathSuffix, err = ansiAt(buf, suffixOff); err != nil {
			return err
		}
	}
	if flags&infoCommonNetworkRelativeLink != 0 && networkOff != 0 {
		if int(networkOff)+12 > len(buf) {
			return fmt.Errorf("%w: network link at %d", ErrTruncated, networkOff)
		}
		netNameOff := binary.LittleEndian.Uint32(buf[networkOff+8:])
		if l.NetName, err = ansiAt(buf, networkOff+netNameOff); err != nil {
			return err
		}
	}
	return nil
}

func readStringData(r io.Reader, wide bool) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", truncated(err)
	}
	width := 1
	if wide {
		width = 2
	}
	buf := make([]byte, int(n)*width)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", truncated(err)
	}
	if wide {
		return decodeUTF16(buf)
	}
	return decodeANSI(buf)
}

func ansiAt(buf []byte, off uint32) (string, error) {
	if int(off) >= len(buf) {
		return "", fmt.Errorf("%w: string at %d", ErrTruncated, off)
	}
	b := buf[off:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return decodeANSI(b)
}

func utf16At(buf []byte, off uint32) (string, error) {
	if int(off) >= len(buf) {
		return "", fmt.Errorf("%w: string at %d", ErrTruncated, off)
	}
	b := buf[off:]
	end := len(b) &^ 1
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			end = i
			break
		}
	}
	return decodeUTF16(b[:end])
}

func decodeANSI(b []byte) (string, error) {
	return charmap.Windows1252.NewDecoder().String(string(b))
}

func decodeUTF16(b []byte) (string, error) {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().String(string(b))
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}

func joinSuffix(base, suffix string) string {
	if suffix == "" {
		return base
	}
	if strings.HasSuffix(base, `\`) {
		return base + suffix
	}
	return base + `\` + suffix
}

// joinWindows resolves rel against dir, treating both separators alike.
func joinWindows(dir, rel string) string {
	sep := "/"
	if strings.Contains(dir, `\`) || strings.Contains(rel, `\`) {
		sep = `\`
	}
	d := strings.ReplaceAll(dir, `\`, "/")
	r := strings.ReplaceAll(rel, `\`, "/")
	var joined string
	if len(d) >= 2 && d[1] == ':' {
		joined = d[:2] + path.Join("/", d[2:], r)
	} else {
		joined = path.Join(d, r)
	}
	return strings.ReplaceAll(joined, "/", sep)
}
