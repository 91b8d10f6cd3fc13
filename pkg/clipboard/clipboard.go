// Package clipboard holds data cut or copied by widgets, optionally
// mirrored to a platform clipboard.
package clipboard

import (
	"bytes"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

// MIME types used when the data type is not given.
const (
	MIMEText   = "text/plain"
	MIMEBinary = "application/octet-stream"
)

// NativeProvider connects a Clipboard to the platform clipboard.
type NativeProvider interface {
	SendToClipboard(mime string, data []byte)
	RetrieveFromClipboard() (mime string, data []byte)
}

// Clipboard stores one piece of typed data. The zero value is ready to
// use.
type Clipboard struct {
	mime     string
	data     []byte
	provider NativeProvider
}

// New returns an empty clipboard.
func New() *Clipboard {
	return &Clipboard{}
}

// SetNativeProvider mirrors the clipboard to p; nil detaches it.
func (c *Clipboard) SetNativeProvider(p NativeProvider) {
	c.provider = p
}

// NativeProvider returns the attached native provider.
func (c *Clipboard) NativeProvider() NativeProvider {
	return c.provider
}

// SetData stores a copy of data. An empty mime is sniffed from the data.
func (c *Clipboard) SetData(mime string, data []byte) {
	if mime == "" {
		mime = Sniff(data)
	}
	c.mime = mime
	c.data = bytes.Clone(data)
	if c.provider != nil {
		c.provider.SendToClipboard(c.mime, c.data)
	}
}

// Data returns the stored type and data, refreshed from the native
// provider when one is attached.
func (c *Clipboard) Data() (string, []byte) {
	if c.provider != nil {
		mime, data := c.provider.RetrieveFromClipboard()
		c.mime = mime
		c.data = bytes.Clone(data)
	}
	return c.mime, bytes.Clone(c.data)
}

// SetText stores text as text/plain.
func (c *Clipboard) SetText(text string) {
	c.SetData(MIMEText, []byte(text))
}

// Text returns the stored data when it is text, else "".
func (c *Clipboard) Text() string {
	mime, data := c.Data()
	if mime != MIMEText {
		return ""
	}
	return string(data)
}

// Sniff guesses the MIME type of data.
func Sniff(data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if utf8.Valid(data) {
		return MIMEText
	}
	return MIMEBinary
}
