package api

// Form inputs keep every field as a string so that "left blank" can be told
// apart from "zero".

type loginInput struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type registerInput struct {
	Login      string `json:"login" form:"login"`
	Password   string `json:"password" form:"password"`
	Surname    string `json:"surname" form:"surname"`
	Name       string `json:"name" form:"name"`
	Patronymic string `json:"patronymic" form:"patronymic"`
}

type profileInput struct {
	Password   string `json:"password" form:"password"`
	Surname    string `json:"surname" form:"surname"`
	Name       string `json:"name" form:"name"`
	Patronymic string `json:"patronymic" form:"patronymic"`
}

type plantInput struct {
	Name          string `json:"name" form:"name"`
	PlantTypeID   string `json:"plantTypeId" form:"plant_type_id"`
	MaterialID    string `json:"materialId" form:"material_id"`
	High          string `json:"high" form:"high"`
	PotSize       string `json:"potSize" form:"pot_size"`
	SoilLoosenerK string `json:"soilLoosenerk" form:"soil_loosenerk"`
}

type recordInput struct {
	UserPlantID    string `json:"userPlantId" form:"user_plant_id"`
	Date           string `json:"date" form:"date"`
	Time           string `json:"time" form:"time"`
	VolumeWatering string `json:"volumeWatering" form:"volume_watering"`
}

type conditionInput struct {
	Date        string `json:"date" form:"date"`
	Temperature string `json:"temperature" form:"temperature"`
	Watering    string `json:"watering" form:"watering"`
}
