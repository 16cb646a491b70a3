package structs

type SignedUpdate struct {
	Airnode    string `json:"airnode"`
	TemplateId string `json:"template_id"`
	Timestamp  string `json:"timestamp"`
	Data       string `json:"data"`
	Signature  string `json:"signature"`
}

type UpdateBeaconResponse struct {
	BeaconId string `json:"beacon_id"`
}

type UpdateDapiWithBeaconsRequest struct {
	BeaconIds []string `json:"beacon_ids"`
}

type UpdateDapiWithSignedDataRequest struct {
	Airnodes    []string `json:"airnodes"`
	TemplateIds []string `json:"template_ids"`
	Timestamps  []string `json:"timestamps"`
	Data        []string `json:"data"`
	Signatures  []string `json:"signatures"`
}

type UpdateDapiResponse struct {
	DapiId string `json:"dapi_id"`
}

type BeaconIdResponse struct {
	BeaconId string `json:"beacon_id"`
}

type DapiIdResponse struct {
	DapiId string `json:"dapi_id"`
}

type SetNameRequest struct {
	Name       string `json:"name"`
	DataFeedId string `json:"data_feed_id"`
}

type NameResponse struct {
	Name       string `json:"name"`
	DataFeedId string `json:"data_feed_id"`
}

type Datapoint struct {
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

type DatapointResponse struct {
	Data *Datapoint `json:"data"`
}

type RoleRequest struct {
	Role string `json:"role"`
	Who  string `json:"who"`
}

type HasRoleResponse struct {
	HasRole bool `json:"has_role"`
}

type WellKnownRolesResponse struct {
	Manager                         string `json:"manager"`
	AdminRole                       string `json:"admin_role"`
	UnlimitedReaderRole             string `json:"unlimited_reader_role"`
	NameSetterRole                  string `json:"name_setter_role"`
	WhitelistExpirationExtenderRole string `json:"whitelist_expiration_extender_role"`
	WhitelistExpirationSetterRole   string `json:"whitelist_expiration_setter_role"`
	IndefiniteWhitelisterRole       string `json:"indefinite_whitelister_role"`
}

type WhitelistExpirationRequest struct {
	DataFeedId          string `json:"data_feed_id"`
	Reader              string `json:"reader"`
	ExpirationTimestamp string `json:"expiration_timestamp"`
}

type IndefiniteWhitelistRequest struct {
	DataFeedId string `json:"data_feed_id"`
	Reader     string `json:"reader"`
	Status     bool   `json:"status"`
}

type IndefiniteWhitelistResponse struct {
	IndefiniteWhitelistCount string `json:"indefinite_whitelist_count"`
}

type RevokeIndefiniteWhitelistRequest struct {
	DataFeedId string `json:"data_feed_id"`
	Reader     string `json:"reader"`
	Setter     string `json:"setter"`
}

type RevokeIndefiniteWhitelistResponse struct {
	Revoked                  bool   `json:"revoked"`
	IndefiniteWhitelistCount string `json:"indefinite_whitelist_count"`
}

type WhitelistStatusResponse struct {
	ExpirationTimestamp      string `json:"expiration_timestamp"`
	IndefiniteWhitelistCount string `json:"indefinite_whitelist_count"`
	SetterStatus             *bool  `json:"setter_status,omitempty"`
}

type ReaderCanReadResponse struct {
	CanRead bool `json:"can_read"`
}
