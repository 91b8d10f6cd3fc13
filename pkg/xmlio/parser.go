package xmlio

import (
	"bytes"
	"html"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"

	guierrors "github.com/go-drift/facet/pkg/errors"
)

// Handler receives the SAX-style callbacks produced by Parse.
type Handler interface {
	ElementStart(name string, attrs Attributes) error
	ElementEnd(name string) error
	// Text receives element text with entities decoded. Whitespace between
	// elements is not delivered; whitespace that is the whole content of
	// an element is.
	Text(text string) error
}

// Parse reads an XML document from r and feeds it to h. Malformed documents
// fail with InvalidRequest; the first error returned by h stops parsing and
// is returned unchanged.
func Parse(r io.Reader, h Handler) error {
	l := xml.NewLexer(parse.NewInput(r))
	p := &saxParser{handler: h}
	for {
		tt, data := l.Next()
		var err error
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return guierrors.InvalidRequest("xmlio.Parse", "", l.Err())
			}
			return p.finish()
		case xml.StartTagToken:
			err = p.startTag(string(l.Text()))
		case xml.AttributeToken:
			p.attrs = append(p.attrs, Attribute{Name: string(l.Text()), Value: attrValue(l.AttrVal())})
		case xml.StartTagCloseToken:
			err = p.openElement(false)
		case xml.StartTagCloseVoidToken:
			err = p.openElement(true)
		case xml.EndTagToken:
			err = p.endTag(string(l.Text()))
		case xml.TextToken:
			err = p.text(html.UnescapeString(string(data)))
		case xml.CDATAToken:
			err = p.text(string(cdata(data)))
		}
		if err != nil {
			return err
		}
	}
}

type saxParser struct {
	handler Handler
	stack   []string
	pending string
	attrs   Attributes
	inTag   bool
	// leaf is set while the innermost element has no child elements;
	// blank holds its whitespace-only text until its end tag.
	leaf  bool
	blank string
}

func (p *saxParser) startTag(name string) error {
	p.pending = name
	p.attrs = nil
	p.inTag = true
	return nil
}

func (p *saxParser) openElement(void bool) error {
	if !p.inTag {
		return nil
	}
	p.inTag = false
	name, attrs := p.pending, p.attrs
	p.attrs = nil
	if err := p.handler.ElementStart(name, attrs); err != nil {
		return err
	}
	if void {
		p.leaf, p.blank = false, ""
		return p.handler.ElementEnd(name)
	}
	p.stack = append(p.stack, name)
	p.leaf, p.blank = true, ""
	return nil
}

func (p *saxParser) endTag(name string) error {
	n := len(p.stack)
	if n == 0 || p.stack[n-1] != name {
		return guierrors.InvalidRequestf("xmlio.Parse", name, "unexpected closing tag")
	}
	p.stack = p.stack[:n-1]
	if p.leaf && p.blank != "" {
		if err := p.handler.Text(p.blank); err != nil {
			return err
		}
	}
	p.leaf, p.blank = false, ""
	return p.handler.ElementEnd(name)
}

func (p *saxParser) text(t string) error {
	if len(p.stack) == 0 {
		return nil
	}
	if len(bytes.TrimSpace([]byte(t))) == 0 {
		if p.leaf {
			p.blank += t
		}
		return nil
	}
	if p.blank != "" {
		t, p.blank = p.blank+t, ""
	}
	return p.handler.Text(t)
}

func (p *saxParser) finish() error {
	if len(p.stack) > 0 {
		return guierrors.InvalidRequestf("xmlio.Parse", p.stack[len(p.stack)-1], "element not closed")
	}
	return nil
}

// attrValue strips the quotes the lexer leaves on attribute values and
// decodes entities.
func attrValue(v []byte) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		v = v[1 : len(v)-1]
	}
	return html.UnescapeString(string(v))
}

func cdata(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte("<![CDATA["))
	return bytes.TrimSuffix(data, []byte("]]>"))
}
