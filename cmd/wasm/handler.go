package main

import (
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc/internal/family"
	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/signature"
)

// request is the JSON argument of every exported function. Binary fields
// are hex encoded; Hash is the hex message hash to sign or verify.
type request struct {
	Curve         string `json:"curve"`
	PrivateKey    string `json:"privateKey,omitempty"`
	PublicKey     string `json:"publicKey,omitempty"`
	Hash          string `json:"hash,omitempty"`
	Signature     string `json:"signature,omitempty"`
	Format        string `json:"format,omitempty"`
	Deterministic bool   `json:"deterministic,omitempty"`
	PRF           string `json:"prf,omitempty"`
	Compressed    bool   `json:"compressed,omitempty"`
}

// response is returned as a JSON string. Error is set on failure only.
type response struct {
	Result string `json:"result,omitempty"`
	Valid  *bool  `json:"valid,omitempty"`
	Error  string `json:"error,omitempty"`
}

type handler func(req *request, f family.Family) (*response, error)

// call decodes the request, runs h and encodes its response.
func call(h handler, input string) string {
	var req request
	resp, err := func() (*response, error) {
		if err := json.Unmarshal([]byte(input), &req); err != nil {
			return nil, errors.Wrap(err, "invalid request json")
		}
		f, err := family.ByName(req.Curve)
		if err != nil {
			return nil, err
		}
		return h(&req, f)
	}()
	if err != nil {
		logger.Debugf("request failed: %v", err)
		resp = &response{Error: err.Error()}
	}
	out, _ := json.Marshal(resp)
	return string(out)
}

func field(name, value string) ([]byte, error) {
	if value == "" {
		return nil, errors.Errorf("missing %s", name)
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", name)
	}
	return b, nil
}

func privateKey(req *request, f family.Family) (ecc.PrivateKey, error) {
	b, err := field("privateKey", req.PrivateKey)
	if err != nil {
		return nil, err
	}
	defer clear(b)
	return f.ParsePrivate(b)
}

func publicKey(req *request, f family.Family) (ecc.PublicKey, error) {
	b, err := field("publicKey", req.PublicKey)
	if err != nil {
		return nil, err
	}
	return f.ParsePublic(b)
}

func codec(req *request, f family.Family) (signature.Codec, error) {
	format := signature.FormatCompact
	if req.Format != "" {
		var err error
		if format, err = signature.ParseFormat(req.Format); err != nil {
			return nil, err
		}
	}
	return signature.NewCodec(format, f.Curve().ScalarSize())
}

func generateKey(req *request, f family.Family) (*response, error) {
	k, err := f.Generate()
	if err != nil {
		return nil, err
	}
	defer k.Clear()
	b, err := k.Bytes()
	if err != nil {
		return nil, err
	}
	defer clear(b)
	return &response{Result: hex.EncodeToString(b)}, nil
}

func publicKeyOf(req *request, f family.Family) (*response, error) {
	k, err := privateKey(req, f)
	if err != nil {
		return nil, err
	}
	defer k.Clear()
	pub, err := k.PublicKey()
	if err != nil {
		return nil, err
	}
	if req.Compressed {
		return &response{Result: hex.EncodeToString(pub.CompressedBytes())}, nil
	}
	return &response{Result: hex.EncodeToString(pub.Bytes())}, nil
}

func sign(req *request, f family.Family) (*response, error) {
	k, err := privateKey(req, f)
	if err != nil {
		return nil, err
	}
	defer k.Clear()
	hash, err := field("hash", req.Hash)
	if err != nil {
		return nil, err
	}
	c, err := codec(req, f)
	if err != nil {
		return nil, err
	}

	var sig signature.Pair
	if req.Deterministic {
		prf := ecc.SHA256
		if req.PRF != "" {
			if prf, err = ecc.HashByName(req.PRF); err != nil {
				return nil, err
			}
		}
		sig, err = k.SignHashDeterministic(hash, prf)
	} else {
		sig, err = k.SignHash(hash)
	}
	if err != nil {
		return nil, err
	}
	out, err := c.Encode(sig)
	if err != nil {
		return nil, err
	}
	return &response{Result: hex.EncodeToString(out)}, nil
}

func verify(req *request, f family.Family) (*response, error) {
	pub, err := publicKey(req, f)
	if err != nil {
		return nil, err
	}
	hash, err := field("hash", req.Hash)
	if err != nil {
		return nil, err
	}
	raw, err := field("signature", req.Signature)
	if err != nil {
		return nil, err
	}
	c, err := codec(req, f)
	if err != nil {
		return nil, err
	}
	sig, err := c.Decode(raw)
	if err != nil {
		return nil, err
	}
	valid := pub.VerifyHash(hash, sig)
	return &response{Valid: &valid}, nil
}

func ecdh(req *request, f family.Family) (*response, error) {
	k, err := privateKey(req, f)
	if err != nil {
		return nil, err
	}
	defer k.Clear()
	peer, err := publicKey(req, f)
	if err != nil {
		return nil, err
	}
	shared, err := k.SharedSecret(peer)
	if err != nil {
		return nil, err
	}
	defer clear(shared)
	return &response{Result: hex.EncodeToString(shared)}, nil
}
