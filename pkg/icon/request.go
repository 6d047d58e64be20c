package icon

import "fmt"

type linkResult struct {
	link Link
	err  error
}

// Request carries one resolution through the strategy chain. Links are read
// at most once per reader, so strategies that share a target do not repeat
// platform calls.
type Request struct {
	Path string

	links []LinkReader
	read  map[int]linkResult
}

func NewRequest(path string, links ...LinkReader) *Request {
	return &Request{
		Path:  path,
		links: links,
		read:  make(map[int]linkResult),
	}
}

// LinkAt reads Path with the i-th link reader.
func (r *Request) LinkAt(i int) (Link, error) {
	if res, ok := r.read[i]; ok {
		return res.link, res.err
	}
	var res linkResult
	switch {
	case i < 0 || i >= len(r.links) || r.links[i] == nil:
		res.err = ErrUnsupported
	default:
		res.link, res.err = readLink(r.links[i], r.Path)
	}
	r.read[i] = res
	return res.link, res.err
}

// Target returns the first non-empty target any reader reports.
func (r *Request) Target() (string, error) {
	var last error
	for i := range r.links {
		l, err := r.LinkAt(i)
		if err != nil {
			last = err
			continue
		}
		if l.Target != "" {
			return ExpandEnv(l.Target), nil
		}
	}
	if last == nil {
		return "", ErrNoTarget
	}
	return "", fmt.Errorf("%w: %v", ErrNoTarget, last)
}

func readLink(lr LinkReader, path string) (l Link, err error) {
	defer func() {
		if p := recover(); p != nil {
			l, err = Link{}, fmt.Errorf("panic reading link: %v", p)
		}
	}()
	return lr.ReadLink(path)
}
