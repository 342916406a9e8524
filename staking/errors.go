// Copyright (C) 2019-2025, Dytallix Labs. All rights reserved.
// See the file LICENSE for licensing terms.

// Package staking implements the reward-index accrual model of spec.md
// §4.H: a single global index shared by all delegators, updated once per
// block from the staking_rewards pool, with per-delegator claims computed
// externally from (stake, reward_index) pairs.
package staking
