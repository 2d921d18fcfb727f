package engine

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/frankli0324/go-browse/internal/model"
	"github.com/frankli0324/go-browse/internal/url"
)

func fetchFile(path string) (model.Result, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Failure(model.KindFileNotFound, "File not found: "+path), nil
	}
	if err != nil {
		return model.Result{}, err
	}
	return model.Document(decodeText(b)), nil
}

func fetchData(u *url.URL) model.Result {
	mediatype, payload, ok := u.Data()
	if !ok {
		return model.Failure(model.KindMalformedData, model.MsgMalformedData)
	}
	if !strings.HasSuffix(mediatype, ";base64") {
		return model.Document(payload)
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return model.Failure(model.KindDecodeError, "Base64 decode error: "+err.Error())
	}
	return model.Document(decodeText(b))
}

// decodeText decodes b as UTF-8, invalid sequences become U+FFFD.
func decodeText(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
