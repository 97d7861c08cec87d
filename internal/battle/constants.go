package battle

// Battle configuration limits
const (
	MinRounds           = 1
	MaxRounds           = 10
	MinParticipants     = 2
	MaxParticipants     = 4
	DefaultListLimit    = 20
	MaxListLimit        = 100
	DefaultSlotsPerPack = 1
	ExpiryBatchSize     = 100
	EntryFeeScale       = 2
)

// Settlement phases, reported in logs and SettlementError
const (
	PhaseBegin         = "begin"
	PhaseStatusGate    = "status_gate"
	PhasePersistDraws  = "persist_draws"
	PhaseUpdateTotals  = "update_totals"
	PhaseTransferCards = "transfer_cards"
	PhaseCommit        = "commit"
	PhasePrizeCredit   = "prize_credit"
	PhaseFinish        = "finish"
)

// Start rejection reasons, used as metric labels
const (
	ReasonBattleNotFound = "battle_not_found"
	ReasonUserNotFound   = "user_not_found"
	ReasonNotAuthorized  = "not_authorized"
	ReasonNotWaiting     = "not_waiting"
	ReasonNotFull        = "not_full"
	ReasonNotReady       = "not_ready"
	ReasonEmptyCatalog   = "empty_catalog"
	ReasonInternal       = "internal"
)

// Log messages
const (
	LogMsgCreateBattleCalled = "CreateBattle called"
	LogMsgJoinBattleCalled   = "JoinBattle called"
	LogMsgAddBotCalled       = "AddBot called"
	LogMsgSetReadyCalled     = "SetReady called"
	LogMsgStartBattleCalled  = "StartBattle called"
	LogMsgDeleteBattleCalled = "DeleteBattle called"
	LogMsgBattleSettled      = "Battle settled"
	LogMsgSettlementFailed   = "Battle settlement failed"
	LogMsgLookupRetry        = "Transient lookup failure, retrying"
	LogMsgPublishFailed      = "Failed to publish battle event"
	LogMsgBattleDeleted      = "Battle deleted"
	LogMsgLobbyExpired       = "Stale lobby expired"
	LogMsgExpirySkipped      = "Lobby changed before expiry, skipped"
	LogMsgExpiryFailed       = "Failed to expire lobby"
)

// Error context strings for wrapping
const (
	ErrContextFailedToGetBattle    = "failed to get battle"
	ErrContextFailedToListBattles  = "failed to list battles"
	ErrContextFailedToGetDraws     = "failed to get battle draws"
	ErrContextFailedToGetUser      = "failed to get user"
	ErrContextFailedToGetBox       = "failed to get box"
	ErrContextFailedToBeginTx      = "failed to begin transaction"
	ErrContextFailedToCommitTx     = "failed to commit transaction"
	ErrContextFailedToLockBattle   = "failed to lock battle"
	ErrContextFailedToInsertBattle = "failed to insert battle"
	ErrContextFailedToAddEntrant   = "failed to add participant"
	ErrContextFailedToChargeFee    = "failed to charge entry fee"
	ErrContextFailedToRefundFee    = "failed to refund entry fee"
	ErrContextFailedToCreateBot    = "failed to create bot user"
	ErrContextFailedToSetReady     = "failed to update readiness"
	ErrContextFailedToDelete       = "failed to delete battle"
	ErrContextFailedToResolve      = "failed to resolve outcome"
	ErrContextFailedToListExpired  = "failed to list expired lobbies"
)

// Bot display name parts, combined and title-cased
var (
	botAdjectives = []string{"lucky", "greedy", "shiny", "sleepy", "reckless", "patient", "golden", "holo"}
	botNouns      = []string{"collector", "dealer", "pull bot", "shark", "rookie", "whale", "gambler", "trader"}
)
