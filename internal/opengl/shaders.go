package opengl

// Texture slots. The same index picks the sampler unit and the entry of
// texRepeat used to scale that slot's UVs.
const (
	slotMap = iota
	slotNormal
	slotRoughness
	slotMetalness
	slotAO
	slotAlpha
	slotDisplacement
	slotCount

	unitDirShadow   = slotCount
	unitPointShadow = unitDirShadow + 1
)

// vertex shader: world-space position, normal and tangent frame for the
// fragment stage, optional displacement along the normal, light-space
// position for the directional shadow lookup and view depth for fog.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec2 inUV2;
layout(location = 4) in vec3 inTangent;
layout(location = 5) in vec3 inBitangent;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
uniform mat4 lightViewProj;

uniform sampler2D displacementMap;
uniform bool      hasDisplacementMap;
uniform float     displacementScale;
uniform vec2      texRepeat[7];

out vec3  fragWorldPos;
out vec3  fragNormal;
out vec3  fragTangent;
out vec3  fragBitangent;
out vec2  fragUV;
out vec2  fragUV2;
out vec4  fragLightSpacePos;
out float fragViewDepth;

void main() {
    vec3 pos = inPosition;
    if (hasDisplacementMap) {
        float h = texture(displacementMap, inUV * texRepeat[6]).r;
        pos += normalize(inNormal) * h * displacementScale;
    }
    vec4 world = model * vec4(pos, 1.0);
    mat3 normalMatrix = mat3(transpose(inverse(model)));

    fragWorldPos      = world.xyz;
    fragNormal        = normalize(normalMatrix * inNormal);
    fragTangent       = normalize(mat3(model) * inTangent);
    fragBitangent     = normalize(mat3(model) * inBitangent);
    fragUV            = inUV;
    fragUV2           = inUV2;
    fragLightSpacePos = lightViewProj * world;

    vec4 viewPos  = view * world;
    fragViewDepth = -viewPos.z;
    gl_Position   = projection * viewPos;
}
` + "\x00"

const fragSrc = `
#version 410 core
#define MAX_POINT_LIGHTS 8

in vec3  fragWorldPos;
in vec3  fragNormal;
in vec3  fragTangent;
in vec3  fragBitangent;
in vec2  fragUV;
in vec2  fragUV2;
in vec4  fragLightSpacePos;
in float fragViewDepth;

out vec4 outColor;

uniform vec3 cameraPos;
uniform vec3 ambientLight;

uniform bool            hasDirLight;
uniform vec3            dirLightDir;
uniform vec3            dirLightColor;
uniform bool            dirLightShadow;
uniform sampler2DShadow dirShadowMap;
uniform float           dirShadowBias;
uniform float           dirShadowTexel;

uniform int   pointLightCount;
uniform vec3  pointLightPos[MAX_POINT_LIGHTS];
uniform vec3  pointLightColor[MAX_POINT_LIGHTS];
uniform float pointLightDistance[MAX_POINT_LIGHTS];
uniform float pointLightDecay[MAX_POINT_LIGHTS];
uniform int   pointLightShadow[MAX_POINT_LIGHTS]; // cube slot or -1
uniform float pointShadowFar[4];
uniform float pointShadowBias[4];
uniform samplerCube pointShadowMap0;
uniform samplerCube pointShadowMap1;
uniform samplerCube pointShadowMap2;
uniform samplerCube pointShadowMap3;

uniform bool receiveShadow;

uniform vec3  matColor;
uniform float matMetalness;
uniform float matRoughness;
uniform float aoMapIntensity;

uniform sampler2D map;
uniform sampler2D normalMap;
uniform sampler2D roughnessMap;
uniform sampler2D metalnessMap;
uniform sampler2D aoMap;
uniform sampler2D alphaMap;
uniform bool hasMap;
uniform bool hasNormalMap;
uniform bool hasRoughnessMap;
uniform bool hasMetalnessMap;
uniform bool hasAOMap;
uniform bool hasAlphaMap;
uniform vec2 texRepeat[7];

uniform bool  fogEnabled;
uniform vec3  fogColor;
uniform float fogNear;
uniform float fogFar;

const float PI = 3.14159265359;

// ── Shadows ──────────────────────────────────────────────────────────────────

float calcDirShadow() {
    vec3 p = fragLightSpacePos.xyz / fragLightSpacePos.w;
    p = p * 0.5 + 0.5;
    if (p.z > 1.0) return 1.0;
    float shadow = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            vec2 off = vec2(float(x), float(y)) * dirShadowTexel;
            shadow += texture(dirShadowMap, vec3(p.xy + off, p.z - dirShadowBias));
        }
    }
    return shadow / 9.0;
}

float sampleCube(int slot, vec3 dir) {
    if (slot == 0) return texture(pointShadowMap0, dir).r;
    if (slot == 1) return texture(pointShadowMap1, dir).r;
    if (slot == 2) return texture(pointShadowMap2, dir).r;
    return texture(pointShadowMap3, dir).r;
}

float calcPointShadow(int slot, vec3 lightPos) {
    vec3  d       = fragWorldPos - lightPos;
    float current = length(d);
    float far     = pointShadowFar[slot];
    if (current >= far) return 1.0;
    float closest = sampleCube(slot, d) * far;
    float bias    = 0.05 + pointShadowBias[slot] * far;
    return current - bias > closest ? 0.0 : 1.0;
}

// ── PBR helpers (Cook-Torrance BRDF) ─────────────────────────────────────────

float DistributionGGX(vec3 N, vec3 H, float roughness) {
    float a   = roughness * roughness;
    float a2  = a * a;
    float NdH = max(dot(N, H), 0.0);
    float d   = NdH * NdH * (a2 - 1.0) + 1.0;
    return a2 / (PI * d * d);
}

float GeometrySchlickGGX(float cosTheta, float roughness) {
    float r = roughness + 1.0;
    float k = (r * r) / 8.0;
    return cosTheta / (cosTheta * (1.0 - k) + k);
}

float GeometrySmith(float NdV, float NdL, float roughness) {
    return GeometrySchlickGGX(NdV, roughness) * GeometrySchlickGGX(NdL, roughness);
}

vec3 FresnelSchlick(float cosTheta, vec3 F0) {
    return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

// Light colours are not physically scaled, so radiance carries a factor of
// PI that cancels the Lambert 1/PI.
vec3 evalPBR(vec3 N, vec3 V, vec3 L, vec3 color, vec3 albedo, float metallic, float roughness, vec3 F0) {
    float NdL = max(dot(N, L), 0.0);
    if (NdL <= 0.0) return vec3(0.0);

    vec3  H   = normalize(V + L);
    float NdV = max(dot(N, V), 0.0);

    float D = DistributionGGX(N, H, roughness);
    float G = GeometrySmith(NdV, NdL, roughness);
    vec3  F = FresnelSchlick(max(dot(H, V), 0.0), F0);

    vec3 kD       = (vec3(1.0) - F) * (1.0 - metallic);
    vec3 specular = D * G * F / max(4.0 * NdV * NdL, 0.001);

    return (kD * albedo / PI + specular) * color * PI * NdL;
}

float distanceAttenuation(float d, float cutoff, float decay) {
    if (cutoff > 0.0 && decay > 0.0) {
        return pow(clamp(1.0 - d / cutoff, 0.0, 1.0), decay);
    }
    return 1.0;
}

// ── Main ─────────────────────────────────────────────────────────────────────

void main() {
    vec4 base = vec4(matColor, 1.0);
    if (hasMap) {
        base *= texture(map, fragUV * texRepeat[0]);
    }
    if (hasAlphaMap) {
        base.a *= texture(alphaMap, fragUV * texRepeat[5]).g;
    }

    float roughness = matRoughness;
    if (hasRoughnessMap) {
        roughness *= texture(roughnessMap, fragUV * texRepeat[2]).g;
    }
    roughness = clamp(roughness, 0.04, 1.0);

    float metallic = matMetalness;
    if (hasMetalnessMap) {
        metallic *= texture(metalnessMap, fragUV * texRepeat[3]).b;
    }

    float ao = 1.0;
    if (hasAOMap) {
        ao = (texture(aoMap, fragUV2 * texRepeat[4]).r - 1.0) * aoMapIntensity + 1.0;
    }

    vec3 N = normalize(fragNormal);
    if (hasNormalMap) {
        mat3 TBN = mat3(normalize(fragTangent), normalize(fragBitangent), N);
        N = normalize(TBN * (texture(normalMap, fragUV * texRepeat[1]).rgb * 2.0 - 1.0));
    }
    vec3 V = normalize(cameraPos - fragWorldPos);

    vec3 albedo = base.rgb;
    vec3 F0     = mix(vec3(0.04), albedo, metallic);

    vec3 color = ambientLight * albedo * (1.0 - metallic) * ao;

    if (hasDirLight) {
        float s = (receiveShadow && dirLightShadow) ? calcDirShadow() : 1.0;
        color += s * evalPBR(N, V, normalize(dirLightDir), dirLightColor, albedo, metallic, roughness, F0);
    }

    for (int i = 0; i < pointLightCount && i < MAX_POINT_LIGHTS; i++) {
        vec3  toLight = pointLightPos[i] - fragWorldPos;
        float d       = length(toLight);
        float atten   = distanceAttenuation(d, pointLightDistance[i], pointLightDecay[i]);
        if (atten <= 0.0) continue;
        float s = 1.0;
        if (receiveShadow && pointLightShadow[i] >= 0) {
            s = calcPointShadow(pointLightShadow[i], pointLightPos[i]);
        }
        color += s * evalPBR(N, V, toLight / d, pointLightColor[i] * atten, albedo, metallic, roughness, F0);
    }

    if (fogEnabled) {
        color = mix(color, fogColor, smoothstep(fogNear, fogFar, fragViewDepth));
    }
    outColor = vec4(color, base.a);
}
` + "\x00"

// depth-only vertex shader for the directional shadow pass
const depthVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
uniform mat4 lightMVP;
void main() {
    gl_Position = lightMVP * vec4(inPosition, 1.0);
}
` + "\x00"

// depth-only fragment shader (OpenGL writes depth implicitly)
const depthFragSrc = `
#version 410 core
void main() {}
` + "\x00"

// cube shadow pass: depth is the linear distance to the light over far.
const cubeDepthVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
uniform mat4 model;
uniform mat4 faceViewProj;
out vec3 worldPos;
void main() {
    vec4 w   = model * vec4(inPosition, 1.0);
    worldPos = w.xyz;
    gl_Position = faceViewProj * w;
}
` + "\x00"

const cubeDepthFragSrc = `
#version 410 core
in vec3 worldPos;
uniform vec3  lightPos;
uniform float far;
void main() {
    gl_FragDepth = length(worldPos - lightPos) / far;
}
` + "\x00"

// text overlay: a screen-space quad built from gl_VertexID.
const textVertSrc = `
#version 410 core
uniform vec4 rect; // xy = bottom-left, zw = top-right, NDC
out vec2 fragUV;
void main() {
    vec2 c = vec2(float(gl_VertexID & 1), float(gl_VertexID >> 1));
    gl_Position = vec4(mix(rect.xy, rect.zw, c), 0.0, 1.0);
    fragUV = vec2(c.x, 1.0 - c.y);
}
` + "\x00"

const textFragSrc = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;
uniform sampler2D glyphs;
void main() {
    outColor = texture(glyphs, fragUV);
}
` + "\x00"
