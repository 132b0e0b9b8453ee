package services

import (
	"sync"
	"time"

	"github.com/digitalflow/backend/models"

	"github.com/google/uuid"
)

// GovernanceService é o ledger determinístico de governança: saldos, staking
// e votação ponderada por stake. Mesma disciplina do registro de assets: um
// mutex único e operações totalmente aplicadas ou totalmente abortadas.
type GovernanceService struct {
	mu sync.Mutex

	admin models.Address
	now   func() time.Time

	balances    map[models.Address]models.Amount // Saldo disponível (não staked)
	stakes      map[models.Address]models.Amount
	totalSupply models.Amount

	nextProposalID uint64 // Propostas começam em 1
	proposals      map[uint64]*models.Proposal
	voted          map[uint64]map[models.Address]bool
	events         []models.GovernanceEvent
}

// NewGovernanceService cria um ledger vazio. admin é a única conta autorizada
// a emitir saldo novo.
func NewGovernanceService(admin models.Address) *GovernanceService {
	return &GovernanceService{
		admin:          admin,
		now:            time.Now,
		balances:       make(map[models.Address]models.Amount),
		stakes:         make(map[models.Address]models.Amount),
		nextProposalID: 1,
		proposals:      make(map[uint64]*models.Proposal),
		voted:          make(map[uint64]map[models.Address]bool),
	}
}

// Mint credita saldo novo à conta destino. Restrito ao administrador.
func (s *GovernanceService) Mint(caller, to models.Address, amount models.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller != s.admin {
		return authorizationError(CodeNotAdmin, "somente o administrador pode emitir saldo")
	}
	if amount == 0 {
		return validationError(CodeBadInput, "quantidade deve ser maior que zero")
	}

	s.balances[to] += amount
	s.totalSupply += amount
	return nil
}

// Stake move valor do saldo disponível para o bucket de stake, que dá peso
// de voto. O supply total é conservado.
func (s *GovernanceService) Stake(caller models.Address, amount models.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount == 0 {
		return validationError(CodeBadInput, "quantidade deve ser maior que zero")
	}
	if amount > s.balances[caller] {
		return validationError(CodeInsufficientBalance, "saldo disponível %d insuficiente para stake de %d", s.balances[caller], amount)
	}

	s.balances[caller] -= amount
	s.stakes[caller] += amount
	return nil
}

// Unstake devolve valor do bucket de stake para o saldo disponível. Votos já
// registrados mantêm o peso da época do voto; votos futuros usam o stake
// reduzido.
func (s *GovernanceService) Unstake(caller models.Address, amount models.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount == 0 {
		return validationError(CodeBadInput, "quantidade deve ser maior que zero")
	}
	if amount > s.stakes[caller] {
		return validationError(CodeInsufficientStake, "stake de %d insuficiente para retirar %d", s.stakes[caller], amount)
	}

	s.stakes[caller] -= amount
	s.balances[caller] += amount
	return nil
}

// CreateProposal registra uma proposta nova. Somente stakers podem criar;
// IDs começam em 1 e são monotônicos.
func (s *GovernanceService) CreateProposal(caller models.Address, description string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stakes[caller] == 0 {
		return 0, authorizationError(CodeMustBeStaker, "é preciso ter stake para criar proposta")
	}
	if description == "" {
		return 0, validationError(CodeBadInput, "descrição é obrigatória")
	}

	id := s.nextProposalID
	s.nextProposalID++

	s.proposals[id] = &models.Proposal{
		ID:          id,
		Description: description,
		CreatedAt:   s.now(),
	}
	s.voted[id] = make(map[models.Address]bool)

	s.emit(models.GovernanceEvent{Kind: models.EventProposalCreated, ProposalID: id, Actor: caller, Description: description})
	return id, nil
}

// Vote soma o stake atual do caller a favor ou contra a proposta. Cada
// staker vota no máximo uma vez por proposta; sem esse limite um único
// staker poderia levar votesFor+votesAgainst acima do supply em stake.
func (s *GovernanceService) Vote(caller models.Address, id uint64, support bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposal, ok := s.proposals[id]
	if !ok {
		return stateError(CodeNotFound, "proposta %d não existe", id)
	}
	weight := s.stakes[caller]
	if weight == 0 {
		return authorizationError(CodeMustBeStaker, "é preciso ter stake para votar")
	}
	if s.voted[id][caller] {
		return stateError(CodeAlreadyVoted, "conta já votou na proposta %d", id)
	}

	s.voted[id][caller] = true
	if support {
		proposal.VotesFor += weight
	} else {
		proposal.VotesAgainst += weight
	}

	s.emit(models.GovernanceEvent{Kind: models.EventVoteCast, ProposalID: id, Actor: caller, Support: support, Weight: weight})
	return nil
}

// BalanceOf retorna o saldo disponível (não staked) da conta.
func (s *GovernanceService) BalanceOf(addr models.Address) models.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balances[addr]
}

// StakeOf retorna o valor em stake da conta.
func (s *GovernanceService) StakeOf(addr models.Address) models.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stakes[addr]
}

// Account retorna o snapshot de saldo e stake da conta.
func (s *GovernanceService) Account(addr models.Address) models.GovernanceAccount {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.GovernanceAccount{
		Address: addr,
		Balance: s.balances[addr],
		Staked:  s.stakes[addr],
	}
}

// TotalSupply retorna o supply total emitido (disponível + staked).
func (s *GovernanceService) TotalSupply() models.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalSupply
}

// Proposal retorna uma cópia da proposta.
func (s *GovernanceService) Proposal(id uint64) (models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposal, ok := s.proposals[id]
	if !ok {
		return models.Proposal{}, stateError(CodeNotFound, "proposta %d não existe", id)
	}
	return *proposal, nil
}

// EventsSince retorna um snapshot dos eventos com Seq > since, em ordem.
func (s *GovernanceService) EventsSince(since uint64) []models.GovernanceEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if since >= uint64(len(s.events)) {
		return nil
	}
	out := make([]models.GovernanceEvent, len(s.events)-int(since))
	copy(out, s.events[since:])
	return out
}

func (s *GovernanceService) emit(ev models.GovernanceEvent) {
	ev.ID = uuid.New().String()
	ev.Seq = uint64(len(s.events)) + 1
	ev.At = s.now()
	s.events = append(s.events, ev)
}
