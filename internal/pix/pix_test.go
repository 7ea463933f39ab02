package pix

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func samplePayload() Payload {
	return Payload{
		Key:          "joao@example.com",
		Amount:       amount("20"),
		Description:  "Agendamento de servico Corte",
		TxID:         "AGD12345",
		MerchantName: "JOAO",
		MerchantCity: "BRASIL",
	}
}

func TestEncode_Golden(t *testing.T) {
	got, err := Encode(samplePayload())
	require.NoError(t, err)

	want := "00020101021126700014br.gov.bcb.pix0116joao@example.com" +
		"0228Agendamento de servico Corte" +
		"520400005303986540520.005802BR5904JOAO6006BRASIL" +
		"62120508AGD12345" +
		"63047CB1"
	assert.Equal(t, want, got)
}

func TestEncode_Deterministic(t *testing.T) {
	a, err := Encode(samplePayload())
	require.NoError(t, err)
	b, err := Encode(samplePayload())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncode_AmountChangesCRC(t *testing.T) {
	p := samplePayload()
	p.Amount = amount("20.01")

	got, err := Encode(p)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "6304A892"), got)
}

func TestEncode_Defaults(t *testing.T) {
	got, err := Encode(Payload{Key: " +5511987654321 "})
	require.NoError(t, err)

	assert.Equal(t,
		"00020101021126360014br.gov.bcb.pix0114+5511987654321"+
			"5204000053039865802BR5902NA6002NA62060502TX6304FB29",
		got,
	)
}

func TestEncode_EmptyKey(t *testing.T) {
	_, err := Encode(Payload{})
	assert.Error(t, err)
}

func TestEncode_LongDescriptionIsTrimmed(t *testing.T) {
	key := "profissional@exemplo.com.br"
	p := samplePayload()
	p.Key = key
	p.Description = "Agendamento de servico Corte masculino com barba e sobrancelha"

	got, err := Encode(p)
	require.NoError(t, err)

	room := DescriptionRoom(key)
	assert.Equal(t, 46, room)

	mai := TLV("00", "br.gov.bcb.pix") + TLV("01", key) + TLV("02", strings.TrimSpace(p.Description[:room]))
	assert.Len(t, mai, 99)
	assert.Contains(t, got, TLV("26", mai))

	body, crc := got[:len(got)-4], got[len(got)-4:]
	assert.Equal(t, fmt.Sprintf("%04X", CRC16([]byte(body))), crc)
}

func TestEncode_DescriptionDroppedWhenKeyFillsField(t *testing.T) {
	key := strings.Repeat("k", 74)
	p := samplePayload()
	p.Key = key

	got, err := Encode(p)
	require.NoError(t, err)
	assert.Contains(t, got, TLV("26", TLV("00", "br.gov.bcb.pix")+TLV("01", key)))
	assert.NotContains(t, got, "Agendamento")
}

func TestEncode_KeyTooLong(t *testing.T) {
	p := samplePayload()
	p.Key = strings.Repeat("k", 78)

	_, err := Encode(p)
	assert.ErrorIs(t, err, ErrKeyTooLong)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "SAO PAULO", Normalize("  São Paulo! ", MaxMerchantCity, true))
	assert.Equal(t, "Acai  pao", Normalize("Açaí & pão", 99, false))
	assert.Equal(t, "JOSE DA SILVA CABELEIREIR", Normalize("José da Silva Cabeleireiros", MaxMerchantName, true))
	assert.Len(t, Normalize(strings.Repeat("x", 200), MaxDescription, false), 99)
}

func TestTLV(t *testing.T) {
	assert.Equal(t, "0002BR", TLV("00", "BR"))
	assert.Equal(t, "5802BR", TLV("58", "BR"))
	assert.Equal(t, "26"+"10"+"0123456789", TLV("26", "0123456789"))
}

func TestCRC16_CheckValue(t *testing.T) {
	// valor de verificação do CRC-16/CCITT-FALSE
	assert.Equal(t, uint16(0x29B1), CRC16([]byte("123456789")))
}
