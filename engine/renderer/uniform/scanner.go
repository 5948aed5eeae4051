package uniform

import (
	"bytes"
	"iter"
	"text/scanner"

	"github.com/spaghettifunk/anima-gfx/engine/renderer/metadata"
)

// Declaration is one uniform found in shader source. Name aliases the source
// passed to the scanner and is only valid while that buffer is.
type Declaration struct {
	Name []byte
	Type metadata.Type
}

// Scanner finds uniform declarations in shader source. The returned sequence
// is lazy and meant to be ranged over once.
type Scanner interface {
	Uniforms(source []byte) iter.Seq[Declaration]
}

// ScanFunc adapts a push style scanner. onUniform is called once per
// declaration and returns false to stop the scan.
type ScanFunc func(source []byte, onUniform func(name []byte, typ metadata.Type) bool)

func (f ScanFunc) Uniforms(source []byte) iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		f(source, func(name []byte, typ metadata.Type) bool {
			return yield(Declaration{Name: name, Type: typ})
		})
	}
}

var glslTypes = map[string]metadata.Type{
	"float":       metadata.TypeFloat,
	"int":         metadata.TypeInt,
	"uint":        metadata.TypeUnsignedInt,
	"vec4":        metadata.TypeFloatVec4,
	"mat4":        metadata.TypeFloatMat4,
	"sampler2D":   metadata.TypeSampler2D,
	"samplerCube": metadata.TypeSamplerCube,
}

func isPrecision(word string) bool {
	return word == "lowp" || word == "mediump" || word == "highp"
}

// GLSLScanner recognises `uniform [precision] type name[, name...];`
// declarations. Comments are skipped, uniform blocks and types it does not
// know are ignored, and scanning stops at the first NUL byte.
type GLSLScanner struct{}

func (GLSLScanner) Uniforms(source []byte) iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		if end := bytes.IndexByte(source, 0); end >= 0 {
			source = source[:end]
		}

		var s scanner.Scanner
		s.Init(bytes.NewReader(source))
		s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanComments | scanner.SkipComments
		s.Error = func(*scanner.Scanner, string) {}

		for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
			if tok != scanner.Ident || s.TokenText() != "uniform" {
				continue
			}
			tok = s.Scan()
			if tok == scanner.Ident && isPrecision(s.TokenText()) {
				tok = s.Scan()
			}
			if tok != scanner.Ident {
				continue
			}
			typ, ok := glslTypes[s.TokenText()]
			if !ok {
				continue
			}

			for {
				if s.Scan() != scanner.Ident {
					break
				}
				offset := s.Position.Offset
				name := source[offset : offset+len(s.TokenText())]
				if !yield(Declaration{Name: name, Type: typ}) {
					return
				}

				tok = s.Scan()
				if tok == '[' {
					for tok != ']' && tok != scanner.EOF {
						tok = s.Scan()
					}
					tok = s.Scan()
				}
				if tok != ',' {
					break
				}
			}
		}
	}
}
