package models

// Amount é um valor em unidades base da plataforma. 1 FLOW = 1e9 unidades,
// então todos os cálculos de preço e royalty são inteiros exatos.
type Amount uint64

// OneFlow é a quantidade de unidades base em 1 FLOW.
const OneFlow Amount = 1_000_000_000

// BpsDenominator: 10000 basis points = 100% do preço de venda.
const BpsDenominator = 10_000

// Address identifica uma conta. O core trata o endereço como string opaca;
// os handlers validam o formato (chave pública base58) antes de chegar aqui.
type Address string

// RoyaltyShare calcula floor(price * bps / 10000). Decomposto em quociente e
// resto para que os produtos intermediários caibam em uint64 para qualquer preço.
func RoyaltyShare(price Amount, bps uint16) Amount {
	q := uint64(price) / BpsDenominator
	r := uint64(price) % BpsDenominator
	return Amount(q*uint64(bps) + r*uint64(bps)/BpsDenominator)
}
