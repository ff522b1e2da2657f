package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
)

//go:embed idl/solanapdas.json
var idlJson []byte

var ErrIdlMismatch = errors.Errorf("idl does not match bank client")

type IdlAccountItem struct {
	Name     string `json:"name"`
	IsMut    bool   `json:"isMut"`
	IsSigner bool   `json:"isSigner"`
}

type IdlField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type IdlInstruction struct {
	Name     string           `json:"name"`
	Accounts []IdlAccountItem `json:"accounts"`
	Args     []IdlField       `json:"args"`
}

type IdlTypeDef struct {
	Name string `json:"name"`
	Type struct {
		Kind   string     `json:"kind"`
		Fields []IdlField `json:"fields"`
	} `json:"type"`
}

type Idl struct {
	Version      string           `json:"version"`
	Name         string           `json:"name"`
	Instructions []IdlInstruction `json:"instructions"`
	Accounts     []IdlTypeDef     `json:"accounts"`
	Metadata     struct {
		Address string `json:"address"`
	} `json:"metadata"`
}

// expectedIdl is the exact contract the encoders in this package implement.
var expectedIdl = Idl{
	Name: "solanapdas",
	Instructions: []IdlInstruction{
		{
			Name: "create",
			Accounts: []IdlAccountItem{
				{Name: "bank", IsMut: true},
				{Name: "user", IsMut: true, IsSigner: true},
				{Name: "systemProgram"},
			},
			Args: []IdlField{{Name: "name", Type: "string"}},
		},
		{
			Name: "deposit",
			Accounts: []IdlAccountItem{
				{Name: "bank", IsMut: true},
				{Name: "user", IsMut: true, IsSigner: true},
				{Name: "systemProgram"},
			},
			Args: []IdlField{{Name: "amount", Type: "u64"}},
		},
		{
			Name: "withdraw",
			Accounts: []IdlAccountItem{
				{Name: "bank", IsMut: true},
				{Name: "user", IsMut: true, IsSigner: true},
			},
			Args: []IdlField{{Name: "amount", Type: "u64"}},
		},
	},
	Accounts: []IdlTypeDef{bankTypeDef()},
}

func bankTypeDef() IdlTypeDef {
	def := IdlTypeDef{Name: "Bank"}
	def.Type.Kind = "struct"
	def.Type.Fields = []IdlField{
		{Name: "name", Type: "string"},
		{Name: "balance", Type: "u64"},
		{Name: "owner", Type: "publicKey"},
	}
	return def
}

func ParseIdl(data []byte) (*Idl, error) {
	idl := new(Idl)
	if err := json.Unmarshal(data, idl); err != nil {
		return nil, errors.WrapPrefix(err, "parse idl", 0)
	}
	return idl, nil
}

// LoadIdl returns the embedded solanapdas IDL.
func LoadIdl() *Idl {
	idl, err := ParseIdl(idlJson)
	if err != nil {
		panic(err)
	}
	return idl
}

func (p *Idl) ProgramId() (solana.PublicKey, error) {
	programId, err := solana.PublicKeyFromBase58(p.Metadata.Address)
	if err != nil {
		return solana.PublicKey{}, errors.WrapPrefix(err, "idl metadata.address", 0)
	}
	return programId, nil
}

func (p *Idl) instruction(name string) *IdlInstruction {
	idx := slices.IndexFunc(p.Instructions, func(ix IdlInstruction) bool { return ix.Name == name })
	if idx < 0 {
		return nil
	}
	return &p.Instructions[idx]
}

func (p *Idl) account(name string) *IdlTypeDef {
	idx := slices.IndexFunc(p.Accounts, func(def IdlTypeDef) bool { return def.Name == name })
	if idx < 0 {
		return nil
	}
	return &p.Accounts[idx]
}

func mismatch(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIdlMismatch, fmt.Sprintf(format, args...))
}

// Validate checks that every instruction and account this package encodes is
// declared in the IDL with the same accounts, arguments and fields.
func (p *Idl) Validate() error {
	if p.Name != expectedIdl.Name {
		return mismatch("program name %q", p.Name)
	}
	if _, err := p.ProgramId(); err != nil {
		return mismatch("%v", err)
	}
	for _, expected := range expectedIdl.Instructions {
		actual := p.instruction(expected.Name)
		if actual == nil {
			return mismatch("missing instruction %s", expected.Name)
		}
		if !slices.Equal(actual.Accounts, expected.Accounts) {
			return mismatch("instruction %s accounts %v", expected.Name, actual.Accounts)
		}
		if !slices.Equal(actual.Args, expected.Args) {
			return mismatch("instruction %s args %v", expected.Name, actual.Args)
		}
	}
	for _, expected := range expectedIdl.Accounts {
		actual := p.account(expected.Name)
		if actual == nil {
			return mismatch("missing account %s", expected.Name)
		}
		if actual.Type.Kind != expected.Type.Kind || !slices.Equal(actual.Type.Fields, expected.Type.Fields) {
			return mismatch("account %s layout %v", expected.Name, actual.Type.Fields)
		}
	}
	return nil
}
