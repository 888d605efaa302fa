// Package safe is the facade an app uses to read the multisig wallet it runs
// on behalf of and to verify signatures against it.
//
// Reads are single round trips through an rpc.Communicator. Signature checks
// never touch key material: they ask the wallet contract itself, through an
// eth_call relayed by the host, whether it accepts a signature (EIP-1271).
// Because a wallet may implement either of the two historical isValidSignature
// conventions, both are probed in order and any failure of a probe counts as
// "not signed".
//
// Privileged reads such as GetAddressBook go through a PermissionGate first
// and fail with a *wallet.PermissionsError when the capability is refused.
package safe
