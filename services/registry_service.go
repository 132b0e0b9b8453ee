package services

import (
	"sort"
	"sync"
	"time"

	"github.com/digitalflow/backend/models"

	"github.com/google/uuid"
)

// RegistryService é o ledger determinístico de assets: identidade, venda,
// distribuição de royalties e licenças de uso. Todo o estado fica atrás de um
// único mutex; cada operação valida, muta o store e só então credita valor,
// de forma que nenhuma chamada observa estado parcialmente aplicado.
type RegistryService struct {
	mu sync.Mutex

	minLicenseFee models.Amount
	now           func() time.Time

	nextID   uint64
	assets   map[uint64]*models.Asset
	licenses map[uint64][]models.License // Sobrevive ao burn do asset
	created  map[models.Address][]uint64 // IDs mintados por criador, em ordem de mint
	proceeds map[models.Address]models.Amount
	events   []models.RegistryEvent
}

// NewRegistryService cria um registro vazio. minLicenseFee é a taxa mínima da
// plataforma para compra de licença, independente do preço do asset.
func NewRegistryService(minLicenseFee models.Amount) *RegistryService {
	return &RegistryService{
		minLicenseFee: minLicenseFee,
		now:           time.Now,
		assets:        make(map[uint64]*models.Asset),
		licenses:      make(map[uint64][]models.License),
		created:       make(map[models.Address][]uint64),
		proceeds:      make(map[models.Address]models.Amount),
	}
}

// Mint registra um novo asset. O caller vira criador e dono inicial, e o
// asset já entra listado à venda pelo preço dado. IDs são atribuídos a partir
// de 0, monotonicamente, e nunca são reutilizados (nem depois de burn).
func (s *RegistryService) Mint(caller models.Address, metadataRef string, price models.Amount, category string, royaltyBps uint16) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if price == 0 {
		return 0, validationError(CodeBadInput, "preço deve ser maior que zero")
	}
	if royaltyBps > models.BpsDenominator {
		return 0, validationError(CodeBadInput, "royalty de %d bps excede o máximo de 10000", royaltyBps)
	}
	if metadataRef == "" {
		return 0, validationError(CodeBadInput, "referência de metadados é obrigatória")
	}
	if category == "" {
		return 0, validationError(CodeBadInput, "categoria é obrigatória")
	}

	id := s.nextID
	s.nextID++

	s.assets[id] = &models.Asset{
		ID:          id,
		Creator:     caller,
		Owner:       caller,
		Price:       price,
		ForSale:     true,
		Category:    category,
		RoyaltyBps:  royaltyBps,
		CreatedAt:   s.now(),
		MetadataRef: metadataRef,
	}
	s.created[caller] = append(s.created[caller], id)

	s.emit(models.RegistryEvent{Kind: models.EventMinted, TokenID: id, Actor: caller})
	return id, nil
}

// List coloca o asset à venda pelo preço dado. Somente o dono atual pode listar.
func (s *RegistryService) List(caller models.Address, id uint64, price models.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.asset(id)
	if err != nil {
		return err
	}
	if asset.Owner != caller {
		return authorizationError(CodeNotOwner, "somente o dono pode listar o asset %d", id)
	}
	if price == 0 {
		return validationError(CodeBadInput, "preço deve ser maior que zero")
	}

	asset.Price = price
	asset.ForSale = true

	s.emit(models.RegistryEvent{Kind: models.EventListed, TokenID: id, Actor: caller, Amount: price})
	return nil
}

// Unlist retira o asset de venda. Somente o dono atual.
func (s *RegistryService) Unlist(caller models.Address, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.asset(id)
	if err != nil {
		return err
	}
	if asset.Owner != caller {
		return authorizationError(CodeNotOwner, "somente o dono pode remover o asset %d da venda", id)
	}

	asset.ForSale = false

	s.emit(models.RegistryEvent{Kind: models.EventUnlisted, TokenID: id, Actor: caller})
	return nil
}

// Purchase compra o asset pelo preço exato. O royalty do criador é deduzido
// do valor e o restante vai para o dono anterior; depois da compra o asset
// sai de venda. Pagamento diferente do preço é rejeitado nas duas direções.
func (s *RegistryService) Purchase(caller models.Address, id uint64, payment models.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.asset(id)
	if err != nil {
		return err
	}
	if !asset.ForSale {
		return stateError(CodeNotForSale, "asset %d não está à venda", id)
	}
	if caller == asset.Owner {
		return validationError(CodeSelfPurchase, "comprador já é o dono do asset %d", id)
	}
	if payment != asset.Price {
		return paymentError(CodeAmountMismatch, "pagamento de %d não corresponde ao preço %d", payment, asset.Price)
	}

	royalty := models.RoyaltyShare(asset.Price, asset.RoyaltyBps)
	sellerAmount := asset.Price - royalty
	creator := asset.Creator
	seller := asset.Owner
	price := asset.Price

	// Primeiro o estado interno reflete o novo dono; só então o valor é
	// movido, para que nenhum callback de transferência veja estado antigo.
	asset.Owner = caller
	asset.ForSale = false

	s.proceeds[creator] += royalty
	s.proceeds[seller] += sellerAmount

	s.emit(models.RegistryEvent{Kind: models.EventRoyaltyPaid, TokenID: id, Actor: creator, Amount: royalty})
	s.emit(models.RegistryEvent{Kind: models.EventPurchased, TokenID: id, Actor: caller, Amount: price})
	return nil
}

// PurchaseLicense vende uma licença de uso sobre o asset sem transferir a
// propriedade. O pagamento deve cobrir a taxa mínima da plataforma e é
// creditado integralmente ao criador.
func (s *RegistryService) PurchaseLicense(caller models.Address, id uint64, licenseType string, payment models.Amount) (models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.asset(id)
	if err != nil {
		return models.License{}, err
	}
	if licenseType == "" {
		return models.License{}, validationError(CodeBadInput, "tipo de licença é obrigatório")
	}
	if payment < s.minLicenseFee {
		return models.License{}, paymentError(CodeInsufficientFee, "pagamento de %d abaixo da taxa mínima de licença %d", payment, s.minLicenseFee)
	}

	license := models.License{
		ID:          uuid.New().String(),
		TokenID:     id,
		Licensee:    caller,
		LicenseType: licenseType,
		PricePaid:   payment,
		PurchasedAt: s.now(),
	}
	s.licenses[id] = append(s.licenses[id], license)
	s.proceeds[asset.Creator] += payment

	s.emit(models.RegistryEvent{Kind: models.EventLicensePurchased, TokenID: id, Actor: caller, Amount: payment, LicenseType: licenseType})
	return license, nil
}

// Burn remove o asset permanentemente. Consultas posteriores sobre o ID
// falham com not found; o log de licenças do ID permanece como histórico.
func (s *RegistryService) Burn(caller models.Address, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.asset(id)
	if err != nil {
		return err
	}
	if asset.Owner != caller {
		return authorizationError(CodeNotOwner, "somente o dono pode queimar o asset %d", id)
	}

	delete(s.assets, id)

	s.emit(models.RegistryEvent{Kind: models.EventBurned, TokenID: id, Actor: caller})
	return nil
}

// OwnerOf retorna o dono atual do asset.
func (s *RegistryService) OwnerOf(id uint64) (models.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.asset(id)
	if err != nil {
		return "", err
	}
	return asset.Owner, nil
}

// MetadataOf retorna a referência de metadados do asset.
func (s *RegistryService) MetadataOf(id uint64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.asset(id)
	if err != nil {
		return "", err
	}
	return asset.MetadataRef, nil
}

// Asset retorna uma cópia do estado do asset.
func (s *RegistryService) Asset(id uint64) (models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.asset(id)
	if err != nil {
		return models.Asset{}, err
	}
	return *asset, nil
}

// LicensesOf retorna as licenças vendidas sobre o asset, em ordem de compra.
// Um asset existente sem licenças (ou já queimado) retorna lista vazia.
func (s *RegistryService) LicensesOf(id uint64) []models.License {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.License, len(s.licenses[id]))
	copy(out, s.licenses[id])
	return out
}

// CreatorTokensOf retorna os IDs mintados pelo endereço, em ordem de mint.
// Inclui assets já vendidos ou queimados.
func (s *RegistryService) CreatorTokensOf(addr models.Address) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]uint64, len(s.created[addr]))
	copy(out, s.created[addr])
	return out
}

// OwnerTokensOf retorna os IDs dos assets atualmente possuídos pelo endereço,
// em ordem crescente de ID.
func (s *RegistryService) OwnerTokensOf(addr models.Address) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []uint64{}
	for id, asset := range s.assets {
		if asset.Owner == addr {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllForSale retorna cópias de todos os assets à venda, em ordem crescente de ID.
func (s *RegistryService) AllForSale() []models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Asset{}
	for _, asset := range s.assets {
		if asset.ForSale {
			out = append(out, *asset)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ProceedsOf retorna o valor acumulado (vendas, royalties e licenças) ainda
// não sacado pelo endereço. O saque em si é papel do colaborador de carteira.
func (s *RegistryService) ProceedsOf(addr models.Address) models.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.proceeds[addr]
}

// EventsSince retorna um snapshot dos eventos com Seq > since, em ordem.
func (s *RegistryService) EventsSince(since uint64) []models.RegistryEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if since >= uint64(len(s.events)) {
		return nil
	}
	out := make([]models.RegistryEvent, len(s.events)-int(since))
	copy(out, s.events[since:])
	return out
}

// asset busca o asset mutável; o chamador deve estar com o mutex.
func (s *RegistryService) asset(id uint64) (*models.Asset, *Error) {
	asset, ok := s.assets[id]
	if !ok {
		return nil, stateError(CodeNotFound, "asset %d não existe", id)
	}
	return asset, nil
}

func (s *RegistryService) emit(ev models.RegistryEvent) {
	ev.ID = uuid.New().String()
	ev.Seq = uint64(len(s.events)) + 1
	ev.At = s.now()
	s.events = append(s.events, ev)
}
