// Package pix monta o "copia e cola" de um Pix estático (BR Code): campos TLV
// em ordem fixa, fechados pelo CRC-16/CCITT-FALSE do campo 63.
package pix

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	MaxMerchantName = 25
	MaxMerchantCity = 15
	MaxDescription  = 99
	MaxTxID         = 25

	gui      = "br.gov.bcb.pix"
	maxField = 99
)

// Payload reúne os dados do recebedor e da cobrança.
type Payload struct {
	Key          string
	Amount       *decimal.Decimal
	Description  string
	TxID         string
	MerchantName string
	MerchantCity string
}

// ErrKeyTooLong: a chave sozinha já estoura o campo 26.
var ErrKeyTooLong = errors.New("pix: key too long for merchant account info")

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9 .,-]`)

// TLV codifica id + tamanho com dois dígitos + valor.
func TLV(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// Normalize remove acentos e caracteres fora de [A-Za-z0-9 .,-] e corta em max bytes.
func Normalize(s string, max int, upper bool) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if ascii, _, err := transform.String(t, s); err == nil {
		s = ascii
	}

	s = unsafeChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if upper {
		s = strings.ToUpper(s)
	}
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// FormatAmount usa duas casas e ponto decimal: "20.00".
func FormatAmount(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// Encode devolve o payload completo, incluindo o CRC. Mesmas entradas, mesma saída.
func Encode(p Payload) (string, error) {
	name := Normalize(orDefault(p.MerchantName, "NA"), MaxMerchantName, true)
	city := Normalize(orDefault(p.MerchantCity, "NA"), MaxMerchantCity, true)
	desc := Normalize(p.Description, MaxDescription, false)
	txid := Normalize(orDefault(p.TxID, "TX"), MaxTxID, false)
	key := strings.TrimSpace(p.Key)

	if key == "" {
		return "", fmt.Errorf("pix: empty key")
	}

	mai := TLV("00", gui) + TLV("01", key)
	if len(mai) > maxField {
		return "", ErrKeyTooLong
	}

	desc = fitDescription(desc, DescriptionRoom(key))
	if desc != "" {
		mai += TLV("02", desc)
	}

	var b strings.Builder
	b.WriteString(TLV("00", "01"))
	b.WriteString(TLV("01", "11"))
	b.WriteString(TLV("26", mai))
	b.WriteString(TLV("52", "0000"))
	b.WriteString(TLV("53", "986"))
	if p.Amount != nil {
		b.WriteString(TLV("54", FormatAmount(*p.Amount)))
	}
	b.WriteString(TLV("58", "BR"))
	b.WriteString(TLV("59", name))
	b.WriteString(TLV("60", city))
	b.WriteString(TLV("62", TLV("05", txid)))
	b.WriteString("6304")

	body := b.String()
	return body + fmt.Sprintf("%04X", CRC16([]byte(body))), nil
}

// DescriptionRoom devolve quantos bytes de descrição ainda cabem no campo 26
// depois do GUI e da chave. Zero ou negativo: não cabe descrição.
func DescriptionRoom(key string) int {
	return maxField - len(TLV("00", gui)) - len(TLV("01", strings.TrimSpace(key))) - 4
}

func fitDescription(desc string, room int) string {
	if room <= 0 {
		return ""
	}
	if len(desc) > room {
		desc = strings.TrimSpace(desc[:room])
	}
	return desc
}

// CRC16 é o CRC-16/CCITT-FALSE: polinômio 0x1021, início 0xFFFF, sem XOR final.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, c := range data {
		crc ^= uint16(c) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
