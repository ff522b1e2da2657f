package bank

import (
	"encoding/binary"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testBank  = solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	testOwner = solana.MustPublicKeyFromBase58("4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T")
)

func encodeBankAccount(discriminator []byte, name string, balance uint64, owner solana.PublicKey) []byte {
	data := append([]byte{}, discriminator...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(name)))
	data = append(data, name...)
	data = binary.LittleEndian.AppendUint64(data, balance)
	return append(data, owner.Bytes()...)
}

// go test --run TestInstructionDiscriminators

func TestInstructionDiscriminators(t *testing.T) {
	assert.Equal(t, [8]byte{24, 30, 200, 40, 5, 28, 7, 119}, [8]byte(Instruction_Create))
	assert.Equal(t, [8]byte{242, 35, 198, 137, 82, 225, 242, 182}, [8]byte(Instruction_Deposit))
	assert.Equal(t, [8]byte{183, 18, 70, 156, 148, 109, 161, 34}, [8]byte(Instruction_Withdraw))
	assert.Equal(t, [8]byte{142, 49, 166, 242, 50, 66, 97, 188}, BankDiscriminator)
}

func TestCreateInstruction(t *testing.T) {
	ix, err := NewCreateInstruction("WSOS Bank 4Nd1mB", testBank, testOwner).ValidateAndBuild()
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	expected := append([]byte{24, 30, 200, 40, 5, 28, 7, 119}, 16, 0, 0, 0)
	expected = append(expected, "WSOS Bank 4Nd1mB"...)
	assert.Equal(t, expected, data)

	accounts := ix.Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, testBank, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsWritable)
	assert.False(t, accounts[0].IsSigner)
	assert.Equal(t, testOwner, accounts[1].PublicKey)
	assert.True(t, accounts[1].IsWritable)
	assert.True(t, accounts[1].IsSigner)
	assert.Equal(t, solana.SystemProgramID, accounts[2].PublicKey)
	assert.False(t, accounts[2].IsWritable)
	assert.Equal(t, ProgramID, ix.ProgramID())
}

func TestDepositInstruction(t *testing.T) {
	ix, err := NewDepositInstruction(100_000_000, testBank, testOwner).ValidateAndBuild()
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	expected := binary.LittleEndian.AppendUint64([]byte{242, 35, 198, 137, 82, 225, 242, 182}, 100_000_000)
	assert.Equal(t, expected, data)
	assert.Len(t, ix.Accounts(), 3)
}

func TestWithdrawInstruction(t *testing.T) {
	ix, err := NewWithdrawInstruction(5, testBank, testOwner).ValidateAndBuild()
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{183, 18, 70, 156, 148, 109, 161, 34, 5, 0, 0, 0, 0, 0, 0, 0}, data)

	accounts := ix.Accounts()
	require.Len(t, accounts, 2)
	assert.True(t, accounts[1].IsSigner)
}

func TestInstructionValidate(t *testing.T) {
	_, err := NewCreateInstructionBuilder().SetBankAccount(testBank).SetUserAccount(testOwner).ValidateAndBuild()
	assert.EqualError(t, err, "Name parameter is not set")

	_, err = NewDepositInstructionBuilder().SetAmount(1).SetBankAccount(testBank).ValidateAndBuild()
	assert.EqualError(t, err, "accounts.user is not set")

	_, err = NewWithdrawInstructionBuilder().SetAmount(1).SetUserAccount(testOwner).ValidateAndBuild()
	assert.EqualError(t, err, "accounts.bank is not set")
}

func TestInstructionString(t *testing.T) {
	ix := NewDepositInstruction(42, testBank, testOwner).Build()
	out := ix.String()
	spew.Dump("TestInstructionString Result", out)
	assert.Contains(t, out, "Deposit")
	assert.Contains(t, out, testBank.String())
}

func TestInstructionWithProgramID(t *testing.T) {
	deployment := solana.MustPublicKeyFromBase58("11111111111111111111111111111112")
	ix := NewDepositInstruction(42, testBank, testOwner).Build().WithProgramID(deployment)
	assert.Equal(t, deployment, ix.ProgramID())
	assert.Contains(t, ix.String(), deployment.String())
	assert.NotContains(t, ix.String(), ProgramID.String())

	idlProgramId, err := LoadIdl().ProgramId()
	require.NoError(t, err)
	assert.Equal(t, idlProgramId, ProgramID)
	assert.Equal(t, ProgramID, NewDepositInstruction(42, testBank, testOwner).Build().ProgramID())
}

// go test --run TestDecodeBank

func TestDecodeBank(t *testing.T) {
	data := encodeBankAccount(BankDiscriminator[:], "WSOS Bank 4Nd1mB", 135_690_880, testOwner)
	// anchor allocates a fixed space, trailing bytes stay zeroed
	data = append(data, make([]byte, 64)...)

	account, err := DecodeBank(data)
	require.NoError(t, err)
	spew.Dump("TestDecodeBank Result", account)
	assert.Equal(t, "WSOS Bank 4Nd1mB", account.Name)
	assert.Equal(t, uint64(135_690_880), account.Balance)
	assert.Equal(t, testOwner, account.Owner)
}

func TestDecodeBankWrongDiscriminator(t *testing.T) {
	data := encodeBankAccount([]byte{1, 2, 3, 4, 5, 6, 7, 8}, "x", 1, testOwner)
	_, err := DecodeBank(data)
	assert.ErrorIs(t, err, ErrDiscriminatorMismatch)
}

func TestDecodeBankTruncated(t *testing.T) {
	data := encodeBankAccount(BankDiscriminator[:], "WSOS Bank", 1, testOwner)
	_, err := DecodeBank(data[:len(data)-4])
	assert.Error(t, err)

	_, err = DecodeBank(BankDiscriminator[:4])
	assert.Error(t, err)
}

func TestDecodeBankInvalidName(t *testing.T) {
	data := encodeBankAccount(BankDiscriminator[:], string([]byte{0xff, 0xfe}), 1, testOwner)
	_, err := DecodeBank(data)
	assert.Error(t, err)
}
