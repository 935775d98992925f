package types

// Event types and attribute keys, following the
// x/staking/keeper/rewards.go EventTypeRewardsDistributed idiom: one event
// type per state-changing operation, attributes via sdk.NewAttribute.
const (
	EventTypeDeposit            = "prizepool_deposit"
	EventTypeRequestWithdraw    = "prizepool_request_withdraw"
	EventTypeWithdraw           = "prizepool_withdraw"
	EventTypeClaimRewards       = "prizepool_claim_rewards"
	EventTypeSponsor            = "prizepool_sponsor"
	EventTypeEndRound           = "prizepool_end_round"
	EventTypeUnbondBatch        = "prizepool_unbond_batch"
	EventTypeValidatorSetUpdate = "prizepool_validator_set_update"
	EventTypeRebalance          = "prizepool_rebalance"
	EventTypeStatusChange       = "prizepool_status_change"

	AttributeKeyActor         = "actor"
	AttributeKeyAmount        = "amount"
	AttributeKeyRound         = "round"
	AttributeKeyBatchIndex    = "batch_index"
	AttributeKeyTotalRewards  = "total_rewards"
	AttributeKeyTriggerShare  = "trigger_share"
	AttributeKeyAdminShare    = "admin_share"
	AttributeKeyReserveShare  = "reserve_share"
	AttributeKeyValidator     = "validator"
	AttributeKeyStatus        = "status"
)
