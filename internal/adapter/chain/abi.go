package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// IdentityABIJSON is the identity ledger surface the bridge consumes.
const IdentityABIJSON = `[
  {"type":"function","name":"getUserVerificationDetails","stateMutability":"view",
   "inputs":[{"name":"user","type":"address"}],
   "outputs":[
     {"name":"isVerified","type":"bool"},
     {"name":"nationality","type":"string"},
     {"name":"ageAtVerification","type":"uint256"},
     {"name":"verificationTimestamp","type":"uint256"},
     {"name":"isHuman","type":"bool"},
     {"name":"passedOFACCheck","type":"bool"},
     {"name":"verificationType","type":"uint8"},
     {"name":"userIdentifier","type":"uint256"}]},
  {"type":"function","name":"isEligibleForROSCA","stateMutability":"view",
   "inputs":[
     {"name":"user","type":"address"},
     {"name":"country","type":"string"},
     {"name":"minAge","type":"uint256"},
     {"name":"maxAge","type":"uint256"}],
   "outputs":[{"name":"eligible","type":"bool"},{"name":"reason","type":"string"}]},
  {"type":"function","name":"getTotalStats","stateMutability":"view","inputs":[],
   "outputs":[
     {"name":"totalUsers","type":"uint256"},
     {"name":"totalCountries","type":"uint256"},
     {"name":"configScope","type":"uint256"}]},
  {"type":"function","name":"recordVerification","stateMutability":"nonpayable",
   "inputs":[
     {"name":"user","type":"address"},
     {"name":"nationality","type":"string"},
     {"name":"olderThan","type":"uint256"},
     {"name":"verificationType","type":"uint8"},
     {"name":"userIdentifier","type":"uint256"}],
   "outputs":[]},
  {"type":"event","name":"UserVerified","anonymous":false,
   "inputs":[
     {"name":"user","type":"address","indexed":true},
     {"name":"userIdentifier","type":"uint256","indexed":true},
     {"name":"nationality","type":"string","indexed":false},
     {"name":"age","type":"uint256","indexed":false},
     {"name":"timestamp","type":"uint256","indexed":false}]}
]`

// CircleABIJSON is the circle factory surface the bridge consumes.
const CircleABIJSON = `[
  {"type":"function","name":"getCircleInfo","stateMutability":"view",
   "inputs":[{"name":"circleId","type":"uint256"}],
   "outputs":[{"name":"info","type":"tuple","components":[
     {"name":"circleId","type":"uint256"},
     {"name":"circleAddress","type":"address"},
     {"name":"creator","type":"address"},
     {"name":"monthlyAmount","type":"uint256"},
     {"name":"maxMembers","type":"uint256"},
     {"name":"duration","type":"uint256"},
     {"name":"country","type":"string"},
     {"name":"minAge","type":"uint256"},
     {"name":"maxAge","type":"uint256"},
     {"name":"memberCount","type":"uint256"},
     {"name":"status","type":"uint8"}]}]},
  {"type":"function","name":"getPlatformStats","stateMutability":"view","inputs":[],
   "outputs":[{"name":"stats","type":"tuple","components":[
     {"name":"totalCircles","type":"uint256"},
     {"name":"activeCircles","type":"uint256"},
     {"name":"completedCircles","type":"uint256"},
     {"name":"totalMembers","type":"uint256"},
     {"name":"totalValueLocked","type":"uint256"},
     {"name":"totalRevenue","type":"uint256"},
     {"name":"avgSuccessRate","type":"uint256"}]}]},
  {"type":"event","name":"CircleCreated","anonymous":false,
   "inputs":[
     {"name":"circleId","type":"uint256","indexed":true},
     {"name":"creator","type":"address","indexed":true},
     {"name":"circleAddress","type":"address","indexed":false},
     {"name":"monthlyAmount","type":"uint256","indexed":false},
     {"name":"country","type":"string","indexed":false},
     {"name":"maxMembers","type":"uint256","indexed":false}]},
  {"type":"event","name":"CircleJoined","anonymous":false,
   "inputs":[
     {"name":"circleId","type":"uint256","indexed":true},
     {"name":"member","type":"address","indexed":true}]}
]`

var (
	IdentityABI = mustParseABI("identity", IdentityABIJSON)
	CircleABI   = mustParseABI("circle", CircleABIJSON)
)

func mustParseABI(name, raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("failed to parse " + name + " ABI: " + err.Error())
	}
	return parsed
}
