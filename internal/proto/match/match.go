// Package match holds the MatchService wire types, codec and service
// descriptor. See match.proto for the contract.
package match

type VoteRequest struct {
	VoterUserId  string `json:"voter_user_id,omitempty"`
	TargetUserId string `json:"target_user_id,omitempty"`
	Liked        bool   `json:"liked,omitempty"`
}

func (x *VoteRequest) GetVoterUserId() string {
	if x != nil {
		return x.VoterUserId
	}
	return ""
}

func (x *VoteRequest) GetTargetUserId() string {
	if x != nil {
		return x.TargetUserId
	}
	return ""
}

func (x *VoteRequest) GetLiked() bool {
	if x != nil {
		return x.Liked
	}
	return false
}

type VoteResponse struct {
	Matched bool `json:"matched,omitempty"`
}

func (x *VoteResponse) GetMatched() bool {
	if x != nil {
		return x.Matched
	}
	return false
}

type UserRequest struct {
	UserId string `json:"user_id,omitempty"`
}

func (x *UserRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

type Profile struct {
	UserId           string `json:"user_id,omitempty"`
	Name             string `json:"name,omitempty"`
	Username         string `json:"username,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Age              uint32 `json:"age,omitempty"`
	Height           uint32 `json:"height,omitempty"`
	GoalRelationship string `json:"goal_relationship,omitempty"`
}

func (x *Profile) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *Profile) GetUsername() string {
	if x != nil {
		return x.Username
	}
	return ""
}

type LuckyPickResponse struct {
	Profile *Profile `json:"profile,omitempty"`
}

func (x *LuckyPickResponse) GetProfile() *Profile {
	if x != nil {
		return x.Profile
	}
	return nil
}

type ProfilesResponse struct {
	Profiles []*Profile `json:"profiles,omitempty"`
}

func (x *ProfilesResponse) GetProfiles() []*Profile {
	if x != nil {
		return x.Profiles
	}
	return nil
}
