package utils

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"hash/crc32"
)

// Character card PNGs carry their bot definition as base64 JSON inside a
// tEXt chunk keyed "chara", the convention used by card editors. Only the
// chunk plumbing lives here; interpreting the JSON is the caller's job.

const charCardKeyword = "chara"

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var (
	ErrNotPNG     = errors.New("not a PNG file")
	ErrNoCharCard = errors.New("no character data in PNG")
)

// ExtractCharCard returns the decoded JSON payload of the "chara" tEXt
// chunk, or ErrNoCharCard if the image has none.
func ExtractCharCard(png []byte) ([]byte, error) {
	if len(png) < len(pngSignature) || !bytes.Equal(png[:len(pngSignature)], pngSignature) {
		return nil, ErrNotPNG
	}

	pos := len(pngSignature)
	for pos+8 <= len(png) {
		length := int(binary.BigEndian.Uint32(png[pos : pos+4]))
		chunkType := string(png[pos+4 : pos+8])
		dataStart := pos + 8
		if dataStart+length+4 > len(png) {
			return nil, ErrNotPNG
		}
		data := png[dataStart : dataStart+length]

		if chunkType == "tEXt" {
			if i := bytes.IndexByte(data, 0); i > 0 && string(data[:i]) == charCardKeyword {
				decoded, err := base64.StdEncoding.DecodeString(string(data[i+1:]))
				if err != nil {
					return nil, err
				}
				return decoded, nil
			}
		}
		if chunkType == "IEND" {
			break
		}
		pos = dataStart + length + 4 // skip data + CRC
	}

	return nil, ErrNoCharCard
}

// EmbedCharCard returns a copy of the PNG with the JSON payload written as a
// "chara" tEXt chunk just before IEND. An existing chara chunk is replaced.
func EmbedCharCard(png []byte, card []byte) ([]byte, error) {
	if len(png) < len(pngSignature) || !bytes.Equal(png[:len(pngSignature)], pngSignature) {
		return nil, ErrNotPNG
	}

	var out bytes.Buffer
	out.Write(pngSignature)

	pos := len(pngSignature)
	wrote := false
	for pos+8 <= len(png) {
		length := int(binary.BigEndian.Uint32(png[pos : pos+4]))
		chunkType := string(png[pos+4 : pos+8])
		dataStart := pos + 8
		if dataStart+length+4 > len(png) {
			return nil, ErrNotPNG
		}
		data := png[dataStart : dataStart+length]

		// Drop any previous chara chunk
		if chunkType == "tEXt" {
			if i := bytes.IndexByte(data, 0); i > 0 && string(data[:i]) == charCardKeyword {
				pos = dataStart + length + 4
				continue
			}
		}

		if chunkType == "IEND" {
			writeChunk(&out, "tEXt", charCardChunkData(card))
			wrote = true
		}

		out.Write(png[pos : dataStart+length+4])
		pos = dataStart + length + 4
	}

	if !wrote {
		return nil, ErrNotPNG
	}
	return out.Bytes(), nil
}

func charCardChunkData(card []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(card)
	data := make([]byte, 0, len(charCardKeyword)+1+len(encoded))
	data = append(data, charCardKeyword...)
	data = append(data, 0)
	data = append(data, encoded...)
	return data
}

func writeChunk(out *bytes.Buffer, chunkType string, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	out.Write(length[:])
	out.WriteString(chunkType)
	out.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(chunkType))
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	out.Write(sum[:])
}
