package services_test

import (
	"testing"

	"github.com/digitalflow/backend/models"
	"github.com/digitalflow/backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const admin = models.Address("admin")

func newGovernance() *services.GovernanceService {
	return services.NewGovernanceService(admin)
}

func TestGovernanceMint(t *testing.T) {
	gov := newGovernance()

	require.NoError(t, gov.Mint(admin, alice, 100))
	assert.Equal(t, models.Amount(100), gov.BalanceOf(alice))
	assert.Equal(t, models.Amount(100), gov.TotalSupply())

	// Somente o administrador emite saldo.
	err := gov.Mint(alice, alice, 100)
	require.Error(t, err)
	assert.True(t, services.IsKind(err, services.KindAuthorization))
	assert.Equal(t, services.CodeNotAdmin, services.ErrorCode(err))
	assert.Equal(t, models.Amount(100), gov.TotalSupply())

	err = gov.Mint(admin, alice, 0)
	require.Error(t, err)
	assert.True(t, services.IsKind(err, services.KindValidation))
}

// TestStakeUnstake verifica a conservação de supply: stake move valor entre
// buckets sem criar nem destruir saldo.
func TestStakeUnstake(t *testing.T) {
	gov := newGovernance()
	require.NoError(t, gov.Mint(admin, alice, 100))

	require.NoError(t, gov.Stake(alice, 60))
	assert.Equal(t, models.Amount(40), gov.BalanceOf(alice))
	assert.Equal(t, models.Amount(60), gov.StakeOf(alice))
	assert.Equal(t, models.Amount(100), gov.TotalSupply())

	// Stake acima do saldo disponível.
	err := gov.Stake(alice, 41)
	require.Error(t, err)
	assert.Equal(t, services.CodeInsufficientBalance, services.ErrorCode(err))

	require.NoError(t, gov.Unstake(alice, 10))
	assert.Equal(t, models.Amount(50), gov.BalanceOf(alice))
	assert.Equal(t, models.Amount(50), gov.StakeOf(alice))
	assert.Equal(t, models.Amount(100), gov.TotalSupply())

	// Unstake acima do valor em stake.
	err = gov.Unstake(alice, 51)
	require.Error(t, err)
	assert.Equal(t, services.CodeInsufficientStake, services.ErrorCode(err))

	account := gov.Account(alice)
	assert.Equal(t, alice, account.Address)
	assert.Equal(t, models.Amount(50), account.Balance)
	assert.Equal(t, models.Amount(50), account.Staked)
}

// TestCreateProposal cobre o cenário do não-staker: a chamada falha e nenhum
// ID de proposta é consumido.
func TestCreateProposal(t *testing.T) {
	gov := newGovernance()

	_, err := gov.CreateProposal(carol, "Test")
	require.Error(t, err)
	assert.True(t, services.IsKind(err, services.KindAuthorization))
	assert.Equal(t, services.CodeMustBeStaker, services.ErrorCode(err))

	require.NoError(t, gov.Mint(admin, alice, 100))
	require.NoError(t, gov.Stake(alice, 100))

	// Saldo sem stake não basta.
	require.NoError(t, gov.Mint(admin, bob, 100))
	_, err = gov.CreateProposal(bob, "Test")
	require.Error(t, err)
	assert.Equal(t, services.CodeMustBeStaker, services.ErrorCode(err))

	_, err = gov.CreateProposal(alice, "")
	require.Error(t, err)
	assert.True(t, services.IsKind(err, services.KindValidation))

	// A primeira proposta aceita recebe o ID 1.
	id, err := gov.CreateProposal(alice, "Test")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	proposal, err := gov.Proposal(id)
	require.NoError(t, err)
	assert.Equal(t, "Test", proposal.Description)
	assert.Equal(t, models.Amount(0), proposal.VotesFor)
	assert.Equal(t, models.Amount(0), proposal.VotesAgainst)

	id2, err := gov.CreateProposal(alice, "Outra")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id2)
}

func TestVote(t *testing.T) {
	gov := newGovernance()
	require.NoError(t, gov.Mint(admin, alice, 100))
	require.NoError(t, gov.Stake(alice, 100))
	require.NoError(t, gov.Mint(admin, bob, 80))
	require.NoError(t, gov.Stake(bob, 30))

	id, err := gov.CreateProposal(alice, "Test")
	require.NoError(t, err)

	require.NoError(t, gov.Vote(alice, id, true))
	proposal, err := gov.Proposal(id)
	require.NoError(t, err)
	assert.Equal(t, models.Amount(100), proposal.VotesFor)
	assert.Equal(t, models.Amount(0), proposal.VotesAgainst)

	require.NoError(t, gov.Vote(bob, id, false))
	proposal, err = gov.Proposal(id)
	require.NoError(t, err)
	assert.Equal(t, models.Amount(100), proposal.VotesFor)
	assert.Equal(t, models.Amount(30), proposal.VotesAgainst)

	// Proposta inexistente.
	err = gov.Vote(alice, 99, true)
	require.Error(t, err)
	assert.Equal(t, services.CodeNotFound, services.ErrorCode(err))

	// Não-staker não vota.
	err = gov.Vote(carol, id, true)
	require.Error(t, err)
	assert.Equal(t, services.CodeMustBeStaker, services.ErrorCode(err))
}

// TestVoteOncePerProposal fixa a decisão sobre voto repetido: cada staker
// vota no máximo uma vez por proposta, então a soma dos votos nunca passa do
// supply total em stake.
func TestVoteOncePerProposal(t *testing.T) {
	gov := newGovernance()
	require.NoError(t, gov.Mint(admin, alice, 100))
	require.NoError(t, gov.Stake(alice, 100))
	require.NoError(t, gov.Mint(admin, bob, 50))
	require.NoError(t, gov.Stake(bob, 50))

	id, err := gov.CreateProposal(alice, "Test")
	require.NoError(t, err)

	require.NoError(t, gov.Vote(alice, id, true))
	err = gov.Vote(alice, id, true)
	require.Error(t, err)
	assert.True(t, services.IsKind(err, services.KindState))
	assert.Equal(t, services.CodeAlreadyVoted, services.ErrorCode(err))

	// Trocar o lado também não é permitido.
	err = gov.Vote(alice, id, false)
	require.Error(t, err)
	assert.Equal(t, services.CodeAlreadyVoted, services.ErrorCode(err))

	require.NoError(t, gov.Vote(bob, id, false))

	proposal, err := gov.Proposal(id)
	require.NoError(t, err)
	totalStaked := gov.StakeOf(alice) + gov.StakeOf(bob)
	assert.LessOrEqual(t, uint64(proposal.VotesFor+proposal.VotesAgainst), uint64(totalStaked))

	// O limite é por proposta: alice vota normalmente em outra.
	id2, err := gov.CreateProposal(alice, "Outra")
	require.NoError(t, err)
	require.NoError(t, gov.Vote(alice, id2, false))
}

// TestVoteWeightSnapshot garante que o peso registrado é o stake na hora do
// voto; unstake posterior não altera votos já contados.
func TestVoteWeightSnapshot(t *testing.T) {
	gov := newGovernance()
	require.NoError(t, gov.Mint(admin, alice, 100))
	require.NoError(t, gov.Stake(alice, 100))

	id, err := gov.CreateProposal(alice, "Test")
	require.NoError(t, err)
	require.NoError(t, gov.Vote(alice, id, true))

	require.NoError(t, gov.Unstake(alice, 70))

	proposal, err := gov.Proposal(id)
	require.NoError(t, err)
	assert.Equal(t, models.Amount(100), proposal.VotesFor)

	// Voto novo usa o stake reduzido.
	id2, err := gov.CreateProposal(alice, "Outra")
	require.NoError(t, err)
	require.NoError(t, gov.Vote(alice, id2, true))
	proposal2, err := gov.Proposal(id2)
	require.NoError(t, err)
	assert.Equal(t, models.Amount(30), proposal2.VotesFor)
}

func TestGovernanceEvents(t *testing.T) {
	gov := newGovernance()
	require.NoError(t, gov.Mint(admin, alice, 100))
	require.NoError(t, gov.Stake(alice, 100))

	id, err := gov.CreateProposal(alice, "Test")
	require.NoError(t, err)
	require.NoError(t, gov.Vote(alice, id, true))

	events := gov.EventsSince(0)
	require.Len(t, events, 2)

	created := events[0]
	assert.Equal(t, models.EventProposalCreated, created.Kind)
	assert.Equal(t, uint64(1), created.Seq)
	assert.Equal(t, id, created.ProposalID)
	assert.Equal(t, "Test", created.Description)
	assert.Equal(t, alice, created.Actor)

	vote := events[1]
	assert.Equal(t, models.EventVoteCast, vote.Kind)
	assert.Equal(t, uint64(2), vote.Seq)
	assert.True(t, vote.Support)
	assert.Equal(t, models.Amount(100), vote.Weight)

	assert.Empty(t, gov.EventsSince(2))

	// Voto rejeitado não emite evento.
	require.Error(t, gov.Vote(alice, id, true))
	assert.Len(t, gov.EventsSince(0), 2)
}
